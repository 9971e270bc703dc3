package fold

import (
	"slices"
	"strings"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

// Service finds the lines that fold under header line n. It reports false
// when line n starts no foldable region.
type Service func(s *engine.State, n int) (engine.LineSpan, bool)

// Services holds language fold services, consulted last to first. Indentation
// folding applies when none answers.
var Services = engine.DefineFacet("foldService", engine.All[Service]())

// Foldable returns the region folded under line n.
func Foldable(s *engine.State, n int) (engine.LineSpan, bool) {
	svcs := Services.Get(s)
	for i := len(svcs) - 1; i >= 0; i-- {
		if span, ok := svcs[i](s, n); ok {
			return span, true
		}
	}
	return IndentFold(s, n)
}

// IndentFold folds the run of lines after n that are indented deeper than n.
// Blank lines inside the run fold with it.
func IndentFold(s *engine.State, n int) (engine.LineSpan, bool) {
	line, ok := s.Line(n)
	if !ok || strings.TrimSpace(line.Text) == "" {
		return engine.LineSpan{}, false
	}
	base := indentWidth(line.Text, s.TabSize())
	last := 0
	for i := n + 1; i <= s.Lines(); i++ {
		next, _ := s.Line(i)
		if strings.TrimSpace(next.Text) == "" {
			continue
		}
		if indentWidth(next.Text, s.TabSize()) <= base {
			break
		}
		last = i
	}
	if last == 0 {
		return engine.LineSpan{}, false
	}
	return engine.LineSpan{From: n + 1, To: last}, true
}

func indentWidth(text string, tabSize int) int {
	w := 0
	for _, r := range text {
		switch r {
		case ' ':
			w++
		case '\t':
			w += tabSize - w%max(tabSize, 1)
		default:
			return w
		}
	}
	return w
}

// folded holds the start offsets of folded header lines.
type folded []int

type foldToggle struct {
	lines []int
	on    bool
}

var (
	foldEffect      = engine.DefineEffect[foldToggle]("fold")
	unfoldAllEffect = engine.DefineEffect[struct{}]("fold.unfoldAll")
)

var foldField = engine.DefineField(engine.FieldSpec[folded]{
	Update: func(f folded, tr *engine.Transaction) folded {
		s := tr.State
		if tr.DocChanged() && len(f) > 0 {
			next := make(folded, 0, len(f))
			for _, pos := range f {
				next = append(next, s.LineAt(tr.Changes.MapPos(pos, -1)).From)
			}
			f = next
		}
		for _, ef := range tr.Effects {
			if unfoldAllEffect.Is(ef) {
				f = nil
			}
			t, ok := foldEffect.Value(ef)
			if !ok {
				continue
			}
			for _, n := range t.lines {
				line, ok := s.Line(n)
				if !ok {
					continue
				}
				f = slices.DeleteFunc(slices.Clone(f), func(p int) bool { return p == line.From })
				if t.on {
					f = append(f, line.From)
				}
			}
		}
		slices.Sort(f)
		return slices.Compact(f)
	},
	Provide: func(fd *engine.Field[folded]) engine.Extension {
		return engine.Folds.Of(func(s *engine.State) []engine.LineSpan {
			var out []engine.LineSpan
			for _, n := range foldedLines(s, fd.Value(s)) {
				if span, ok := Foldable(s, n); ok {
					out = append(out, span)
				}
			}
			return out
		})
	},
})

func foldedLines(s *engine.State, f folded) []int {
	out := make([]int, 0, len(f))
	for _, pos := range f {
		out = append(out, s.LineAt(pos).Number)
	}
	return out
}

// IsFolded reports whether line n is a folded header.
func IsFolded(s *engine.State, n int) bool {
	return slices.Contains(foldedLines(s, foldField.Value(s)), n)
}

// FoldedLines returns the folded header lines in order.
func FoldedLines(s *engine.State) []int {
	return foldedLines(s, foldField.Value(s))
}

// Options configures FoldGutter.
type Options struct {
	// OpenText marks foldable lines. Defaults to "⌄".
	OpenText string
	// ClosedText marks folded lines. Defaults to "›".
	ClosedText string
}

func (o Options) withDefaults() Options {
	if o.OpenText == "" {
		o.OpenText = "⌄"
	}
	if o.ClosedText == "" {
		o.ClosedText = "›"
	}
	return o
}

// StyleFoldGutter is the theme key for fold markers.
const StyleFoldGutter = "foldGutter"

// FoldGutter adds a gutter marking foldable and folded lines. Clicking a
// marker toggles the fold. It also installs fold state, so the commands
// work without the gutter being clicked first.
func FoldGutter(opts Options) engine.Extension {
	opts = opts.withDefaults()
	g := &engine.Gutter{
		Name: "fold",
		Marker: func(v *engine.View, line buffer.Line) string {
			s := v.State()
			if IsFolded(s, line.Number) {
				return opts.ClosedText
			}
			if _, ok := Foldable(s, line.Number); ok {
				return opts.OpenText
			}
			return ""
		},
		Click: func(v *engine.View, line buffer.Line) bool {
			s := v.State()
			if IsFolded(s, line.Number) {
				return dispatchFold(v, []int{line.Number}, false)
			}
			if _, ok := Foldable(s, line.Number); ok {
				return dispatchFold(v, []int{line.Number}, true)
			}
			return false
		},
		Style: StyleFoldGutter,
	}
	return engine.Group(foldField, engine.AddGutter(g))
}

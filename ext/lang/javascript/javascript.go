package javascript

import (
	"context"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/ext/autocomplete"
	"github.com/iw2rmb/inkwell/ext/fold"
)

// Dialect selects the syntax extensions recognised on top of JavaScript.
type Dialect struct {
	JSX        bool
	TypeScript bool
}

var dialectFacet = engine.DefineFacet("javascript.dialect", engine.Last(Dialect{}))

type parsed struct {
	dialect Dialect
	toks    []token
	lines   [][]engine.Span
	folds   map[int]int
}

func parse(s *engine.State) parsed {
	d := dialectFacet.Get(s)
	text := s.Text()
	toks, folds := parseTree(text, d)
	return parsed{dialect: d, toks: toks, lines: lineSpans([]rune(text), toks), folds: folds}
}

var tokensField = engine.DefineField(engine.FieldSpec[parsed]{
	Create: parse,
	Update: func(p parsed, tr *engine.Transaction) parsed {
		if tr.DocChanged() || dialectFacet.Get(tr.State) != p.dialect {
			return parse(tr.State)
		}
		return p
	},
})

func spansOf(s *engine.State, n int) []engine.Span {
	p, ok := tokensField.Get(s)
	if !ok || n < 1 || n > len(p.lines) {
		return nil
	}
	return p.lines[n-1]
}

var highlighting = engine.Group(
	tokensField,
	engine.Highlighters.Of(func(s *engine.State, line buffer.Line) []engine.Span {
		return spansOf(s, line.Number)
	}),
)

// Highlighting tags keywords, strings, numbers, comments and the other
// tokens of the document with the Tag constants. The dialect comes
// from the JavaScript fragment, plain JavaScript when absent.
func Highlighting() engine.Extension { return highlighting }

// inToken reports whether pos sits inside a string or comment. A string
// missing its closing quote extends to its end.
func inToken(s *engine.State, pos int) bool {
	p, ok := tokensField.Get(s)
	if !ok {
		return false
	}
	for _, t := range p.toks {
		if t.from >= pos {
			break
		}
		switch {
		case pos > t.to:
		case t.tag == TagComment:
			if pos < t.to || s.Slice(t.from, t.from+2) == "//" {
				return true
			}
		case t.tag == TagString:
			if pos < t.to || !closed(s, t) {
				return true
			}
		}
	}
	return false
}

func closed(s *engine.State, t token) bool {
	if t.to-t.from < 2 {
		return false
	}
	return s.Slice(t.to-1, t.to) == s.Slice(t.from, t.from+1)
}

// KeywordSource completes keywords of d outside strings and comments.
func KeywordSource(d Dialect) autocomplete.Source {
	words := autocomplete.WordSource(Keywords(d)...)
	return func(ctx context.Context, c autocomplete.Context) (*autocomplete.Result, error) {
		if inToken(c.State, c.Pos) {
			return nil, nil
		}
		return words(ctx, c)
	}
}

// BraceFold folds the inside of the widest bracketed construct (block,
// object, array, argument list) that opens on line n and closes on a later
// line.
func BraceFold(s *engine.State, n int) (engine.LineSpan, bool) {
	p, ok := tokensField.Get(s)
	if !ok {
		return engine.LineSpan{}, false
	}
	end, ok := p.folds[n]
	if !ok || end-1 < n+1 {
		return engine.LineSpan{}, false
	}
	return engine.LineSpan{From: n + 1, To: end - 1}, true
}

// JavaScript bundles highlighting, keyword completion and brace folding for
// dialect d.
func JavaScript(d Dialect) engine.Extension {
	return engine.Group(
		dialectFacet.Of(d),
		highlighting,
		autocomplete.Sources.Of(KeywordSource(d)),
		fold.Services.Of(BraceFold),
	)
}

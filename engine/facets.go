package engine

import (
	"github.com/iw2rmb/inkwell/buffer"
)

// Built-in facets.
var (
	UpdateListener          = DefineFacet("updateListener", All[func(Update)]())
	Editable                = DefineFacet("editable", Last(true))
	ReadOnly                = DefineFacet("readOnly", Last(false))
	AllowMultipleSelections = DefineFacet("allowMultipleSelections", Last(false))
	TabSize                 = DefineFacet("tabSize", Last(4))
	IndentUnit              = DefineFacet("indentUnit", Last("  "))
	LineSeparator           = DefineFacet("lineSeparator", Last("\n"))
	Placeholder             = DefineFacet("placeholder", Last(""))
	Keymaps                 = DefineFacet("keymap", All[[]KeyBinding]())
	Panels                  = DefineFacet("panels", All[*PanelSpec]())
	Gutters                 = DefineFacet("gutters", All[*Gutter]())
	Highlighters            = DefineFacet("highlighters", All[Highlighter]())
	Folds                   = DefineFacet("folds", All[func(*State) []LineSpan]())
	InputHandlers           = DefineFacet("inputHandler", All[InputHandler]())
	ActiveLine              = DefineFacet("activeLine", Any)
	ActiveLineGutter        = DefineFacet("activeLineGutter", Any)
	Sizes                   = DefineFacet("sizing", combineSizing)
	Themes                  = DefineFacet("theme", combineThemes)
)

// InputHandler may take over typed input replacing [from, to). It returns
// true when it handled the input.
type InputHandler func(v *View, from, to int, text string) bool

// Highlighter returns styled spans for one line.
type Highlighter func(s *State, line buffer.Line) []Span

// Span tags line-relative rune columns [From, To) with a theme tag.
type Span struct {
	From int
	To   int
	Tag  string
}

// LineSpan is an inclusive range of line numbers.
type LineSpan struct {
	From int
	To   int
}

// Contains reports whether line n is inside the span.
func (l LineSpan) Contains(n int) bool { return n >= l.From && n <= l.To }

// HighlightActiveLine styles the lines holding a cursor.
func HighlightActiveLine() Extension { return ActiveLine.Of(true) }

// HiddenLines returns the union of every fold provider's spans, in order.
func HiddenLines(s *State) []LineSpan {
	var out []LineSpan
	for _, fn := range Folds.Get(s) {
		out = append(out, fn(s)...)
	}
	return out
}

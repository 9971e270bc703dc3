package gutter

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

// Theme keys for the gutters in this package.
const (
	StyleLineNumbers = "lineNumbers"
	StyleBreakpoints = "breakpointGutter"
)

// LineNumberMarkers overrides the line number shown for a line. A provider
// returns "" to keep the number.
var LineNumberMarkers = engine.DefineFacet("lineNumberMarkers", engine.All[func(s *engine.State, line buffer.Line) string]())

var lineNumbers = &engine.Gutter{
	Name: "lineNumbers",
	Marker: func(v *engine.View, line buffer.Line) string {
		for _, fn := range LineNumberMarkers.Get(v.State()) {
			if m := fn(v.State(), line); m != "" {
				return m
			}
		}
		return fmt.Sprintf("%d", line.Number)
	},
	MinWidth: func(s *engine.State) int { return Digits(s.Lines()) },
	Click: func(v *engine.View, line buffer.Line) bool {
		sel := engine.SingleSelection(line.From, line.To)
		return v.Dispatch(engine.TransactionSpec{Selection: &sel, UserEvent: "select.pointer"}) == nil
	},
	Style: StyleLineNumbers,
}

// LineNumbers shows 1-based line numbers. Clicking a number selects the
// line.
func LineNumbers() engine.Extension { return engine.AddGutter(lineNumbers) }

// HighlightActiveLineGutter styles the gutter cells of lines holding a
// cursor.
func HighlightActiveLineGutter() engine.Extension { return engine.ActiveLineGutter.Of(true) }

// Digits returns the number of decimal digits in n, at least 1.
func Digits(n int) int {
	if n < 1 {
		n = 1
	}
	return len(fmt.Sprintf("%d", n))
}

// EmptyLineGutter replaces the line number of empty lines with "ø".
var EmptyLineGutter = LineNumberMarkers.Of(func(_ *engine.State, line buffer.Line) string {
	if line.Len() == 0 {
		return "ø"
	}
	return ""
})

var breakpointTheme = &engine.Theme{Styles: map[string]lipgloss.Style{
	StyleBreakpoints: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
}}

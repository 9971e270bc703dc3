package autocomplete

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/inkwell/engine"
)

// Theme keys used by the suggestion list.
const (
	StyleTooltip  = "tooltip.autocomplete"
	StyleSelected = "tooltip.autocomplete.selected"
	StyleDetail   = "tooltip.autocomplete.detail"
)

var baseTheme = &engine.Theme{Styles: map[string]lipgloss.Style{
	StyleSelected: lipgloss.NewStyle().Reverse(true),
	StyleDetail:   lipgloss.NewStyle().Faint(true),
}}

func maxRendered(s *engine.State) int {
	if n := configFacet.Get(s).MaxRendered; n > 0 {
		return n
	}
	return defaultMaxRendered
}

func tooltipFor(s *engine.State, cs completionState) *engine.Tooltip {
	if cs.status != statusActive {
		return nil
	}
	rows := maxRendered(s)
	start := 0
	if cs.selected >= rows {
		start = cs.selected - rows + 1
	}
	end := min(start+rows, len(cs.options))
	shown := cs.options[start:end]

	labelW, detailW := 0, 0
	for _, c := range shown {
		labelW = max(labelW, runewidth.StringWidth(c.Label))
		detailW = max(detailW, runewidth.StringWidth(c.Detail))
	}

	th := engine.Themes.Get(s)
	lines := make([]string, len(shown))
	for i, c := range shown {
		row := c.Label + strings.Repeat(" ", labelW-runewidth.StringWidth(c.Label))
		st := th.Style(StyleTooltip)
		if start+i == cs.selected {
			st = th.Style(StyleSelected).Inherit(st)
		}
		out := st.Render(" " + row + " ")
		if detailW > 0 {
			detail := c.Detail + strings.Repeat(" ", detailW-runewidth.StringWidth(c.Detail))
			out += th.Style(StyleDetail).Inherit(st).Render(detail + " ")
		}
		lines[i] = out
	}
	return &engine.Tooltip{Pos: cs.from, Body: strings.Join(lines, "\n")}
}

package lint

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

// Theme keys. Highlighted ranges use the tag "lint-<severity>".
const (
	StylePanel  = "lintPanel"
	StyleGutter = "lintGutter"
)

func tag(sev Severity) string { return "lint-" + sev.String() }

var baseTheme = &engine.Theme{Styles: map[string]lipgloss.Style{
	engine.StyleTagPrefix + tag(Error):   lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#d11")),
	engine.StyleTagPrefix + tag(Warning): lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("orange")),
	engine.StyleTagPrefix + tag(Info):    lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#999")),
	engine.StyleTagPrefix + tag(Hint):    lipgloss.NewStyle().Underline(true),
	StylePanel:                           lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false),
}}

func highlightDiagnostics(s *engine.State, line buffer.Line) []engine.Span {
	var out []engine.Span
	for _, d := range lintField.Value(s).diagnostics {
		if d.To < line.From || d.From > line.To {
			continue
		}
		from := max(d.From, line.From) - line.From
		to := min(d.To, line.To) - line.From
		if to == from {
			continue
		}
		out = append(out, engine.Span{From: from, To: to, Tag: tag(d.Severity)})
	}
	return out
}

type diagnosticsPanel struct {
	v *engine.View
}

var panelSpec = &engine.PanelSpec{Create: func(v *engine.View) engine.Panel {
	return &diagnosticsPanel{v: v}
}}

func (p *diagnosticsPanel) Top() bool { return false }

func (p *diagnosticsPanel) Update(engine.Update) {}

func (p *diagnosticsPanel) Render(width int) string {
	s := p.v.State()
	ls := lintField.Value(s)
	if !ls.panel {
		return ""
	}
	th := p.v.Theme()
	if len(ls.diagnostics) == 0 {
		return th.Style(StylePanel).Render("No diagnostics")
	}
	head := s.Selection().Main().Head
	lines := make([]string, 0, len(ls.diagnostics))
	for _, d := range ls.diagnostics {
		mark := "  "
		if head >= d.From && head <= d.To {
			mark = "> "
		}
		row := fmt.Sprintf("%s%d: %s: %s", mark, s.LineAt(d.From).Number, d.Severity, d.Message)
		if d.Source != "" {
			row += " (" + d.Source + ")"
		}
		if width > 0 {
			row = runewidth.Truncate(row, width, "…")
		}
		lines = append(lines, th.Style(engine.StyleTagPrefix+tag(d.Severity)).UnsetUnderline().Render(row))
	}
	return th.Style(StylePanel).Render(strings.Join(lines, "\n"))
}

// worst returns the most severe diagnostic touching line.
func worst(s *engine.State, line buffer.Line) (Severity, bool) {
	found := false
	var sev Severity
	for _, d := range lintField.Value(s).diagnostics {
		if d.To < line.From || d.From > line.To {
			continue
		}
		if !found || d.Severity > sev {
			sev = d.Severity
		}
		found = true
	}
	return sev, found
}

var lintGutter = &engine.Gutter{
	Name: "lint",
	Marker: func(v *engine.View, line buffer.Line) string {
		sev, ok := worst(v.State(), line)
		if !ok {
			return ""
		}
		switch sev {
		case Error:
			return "✖"
		case Warning:
			return "▲"
		default:
			return "●"
		}
	},
	MinWidth: func(*engine.State) int { return 1 },
	Click: func(v *engine.View, line buffer.Line) bool {
		if _, ok := worst(v.State(), line); !ok {
			return false
		}
		sel := engine.CursorSelection(line.From)
		if !dispatch(v, engine.TransactionSpec{Selection: &sel, UserEvent: "select.pointer"}) {
			return false
		}
		if !lintField.Value(v.State()).panel {
			return ToggleLintPanel(v)
		}
		return true
	},
	Style: StyleGutter,
}

// LintGutter marks lines with diagnostics. Clicking a marker opens the
// panel.
func LintGutter() engine.Extension {
	return engine.Group(lintField, engine.AddGutter(lintGutter))
}

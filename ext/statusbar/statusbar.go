package statusbar

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/stats"
)

// StyleHelpPanel is the theme key of the help panel.
const StyleHelpPanel = "helpPanel"

var toggleHelp = engine.DefineEffect[bool]("statusbar.toggleHelp")

var helpField = engine.DefineField(engine.FieldSpec[bool]{
	Create: func(*engine.State) bool { return false },
	Update: func(on bool, tr *engine.Transaction) bool {
		for _, v := range toggleHelp.In(tr) {
			on = v
		}
		return on
	},
	Provide: func(*engine.Field[bool]) engine.Extension { return engine.ShowPanel(helpPanelSpec) },
})

// ToggleHelp shows or hides the help panel.
func ToggleHelp(v *engine.View) bool {
	on, ok := helpField.Get(v.State())
	if !ok {
		return false
	}
	if err := v.Dispatch(engine.TransactionSpec{Effects: []engine.Effect{toggleHelp.Of(!on)}}); err != nil {
		v.Logger().Debug("toggle help", "error", err)
		return false
	}
	return true
}

var helpKeymap = []engine.KeyBinding{
	engine.BindHelp(ToggleHelp, "F1", "Toggle the help panel", "f1"),
}

var helpTheme = &engine.Theme{Styles: map[string]lipgloss.Style{
	StyleHelpPanel: lipgloss.NewStyle().
		Padding(0, 1).
		Background(lipgloss.Color("#fffa8f")).
		Foreground(lipgloss.Color("#000000")),
}}

type helpPanel struct {
	v    *engine.View
	help help.Model
}

var helpPanelSpec = &engine.PanelSpec{Create: func(v *engine.View) engine.Panel {
	return &helpPanel{v: v, help: help.New()}
}}

func (p *helpPanel) Top() bool { return true }

func (p *helpPanel) Update(engine.Update) {}

// Render lists "F1: Toggle the help panel" followed by the short help of
// every other binding that carries help text.
func (p *helpPanel) Render(width int) string {
	s := p.v.State()
	if !helpField.Value(s) {
		return ""
	}
	st := p.v.Theme().Style(StyleHelpPanel)
	title := helpKeymap[0].Key.Help()
	body := title.Key + ": " + title.Desc

	var others []key.Binding
	seen := map[string]bool{title.Key: true}
	for _, b := range engine.Bindings(s) {
		h := b.Key.Help()
		if h.Key == "" || seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		others = append(others, b.Key)
	}
	if len(others) > 0 {
		p.help.Width = max(width-st.GetHorizontalFrameSize(), 0)
		body += "\n" + p.help.ShortHelpView(others)
	}
	if width > 0 {
		st = st.Width(width - st.GetHorizontalMargins())
	}
	return st.Render(body)
}

// HelpPanel adds a panel above the content toggled with F1.
func HelpPanel() engine.Extension {
	return engine.Group(helpField, engine.Keymap(helpKeymap...), engine.BaseTheme(helpTheme))
}

type wordCountPanel struct {
	text string
}

func (p *wordCountPanel) Top() bool { return false }

func (p *wordCountPanel) Update(u engine.Update) {
	if u.DocChanged {
		p.text = countWords(u.State)
	}
}

func (p *wordCountPanel) Render(int) string { return p.text }

func countWords(s *engine.State) string {
	return fmt.Sprintf("Word count: %d", stats.CountWords(s.Text()))
}

var wordCountSpec = &engine.PanelSpec{Create: func(v *engine.View) engine.Panel {
	return &wordCountPanel{text: countWords(v.State())}
}}

// WordCounter adds a panel below the content showing the document's word
// count. It recounts only when the document changes.
func WordCounter() engine.Extension { return engine.ShowPanel(wordCountSpec) }

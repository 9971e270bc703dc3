package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	v := m.s.core.View()
	if !m.focused || v == nil {
		return m
	}

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.insertPaste(v, string(msg.Runes))
		return m
	}

	if m.cfg.Clipboard != nil {
		km := m.cfg.KeyMap
		switch {
		case key.Matches(msg, km.Copy):
			m.copySelection(v)
			return m
		case key.Matches(msg, km.Cut):
			m.cutSelection(v)
			return m
		case key.Matches(msg, km.Paste):
			m.pasteClipboard(v)
			return m
		}
	}

	if v.HandleKey(msg.String()) {
		return m
	}
	switch msg.Type {
	case tea.KeyRunes:
		if !msg.Alt {
			v.InsertText(string(msg.Runes))
		}
	case tea.KeySpace:
		v.InsertText(" ")
	case tea.KeyTab:
		v.InsertText("\t")
	}
	return m
}

func writable(v *engine.View) bool {
	return engine.Editable.Get(v.State()) && !v.State().ReadOnly()
}

func selectedText(s *engine.State) string {
	var parts []string
	for _, r := range s.Selection().Ranges() {
		if !r.Empty() {
			parts = append(parts, s.Slice(r.From(), r.To()))
		}
	}
	return strings.Join(parts, s.LineBreak())
}

func (m Model) copySelection(v *engine.View) {
	text := selectedText(v.State())
	if text == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(text); err != nil {
		m.s.log.Debug("clipboard write", "error", err)
	}
}

func (m Model) cutSelection(v *engine.View) {
	m.copySelection(v)
	if !writable(v) || selectedText(v.State()) == "" {
		return
	}
	spec := v.State().ReplaceSelection("")
	spec.UserEvent = "delete.cut"
	if err := v.Dispatch(spec); err != nil {
		m.s.log.Debug("cut", "error", err)
	}
}

func (m Model) pasteClipboard(v *engine.View) {
	text, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.s.log.Debug("clipboard read", "error", err)
		return
	}
	m.insertPaste(v, text)
}

func (m Model) insertPaste(v *engine.View, text string) {
	if text == "" || !writable(v) {
		return
	}
	spec := v.State().ReplaceSelection(buffer.NormalizeNewlines(text))
	spec.UserEvent = "input.paste"
	spec.ScrollIntoView = true
	if err := v.Dispatch(spec); err != nil {
		m.s.log.Debug("paste", "error", err)
	}
}

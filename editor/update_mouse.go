package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/engine"
)

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	v := m.s.core.View()
	if v == nil {
		return m
	}
	if isManualScrollMouse(msg) {
		if m.cfg.ScrollPolicy == ScrollAllowManual {
			m.viewport, _ = m.viewport.Update(msg)
			switch msg.Button { //nolint:exhaustive
			case tea.MouseButtonWheelUp:
				v.Scroll(-wheelLines)
			case tea.MouseButtonWheelDown:
				v.Scroll(wheelLines)
			}
		}
		return m
	}
	if !m.focused {
		return m
	}

	// Only left button interactions move the cursor or select.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m
		}
		x, y := msg.X, msg.Y+m.viewport.YOffset
		pos, onText := v.PosAt(x, y)
		if msg.Shift && onText {
			m.mouseAnchor = v.State().Selection().Main().Anchor
			m.mouseDragging = true
			m.selectTo(v, pos)
			return m
		}
		if v.HandleClick(x, y) && onText && v.State().Selection().Main() == engine.Cursor(pos) {
			m.mouseAnchor = pos
			m.mouseDragging = true
		}

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		if pos, ok := v.PosAt(x, y+m.viewport.YOffset); ok {
			m.selectTo(v, pos)
		}

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m
}

func (m Model) selectTo(v *engine.View, pos int) {
	sel := engine.SingleSelection(m.mouseAnchor, pos)
	if err := v.Dispatch(engine.TransactionSpec{Selection: &sel, UserEvent: "select.pointer"}); err != nil {
		m.s.log.Debug("mouse select", "error", err)
	}
}

func isManualScrollMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = min(max(x, 0), m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = min(max(y, 0), m.viewport.Height-1)
	}
	return x, y
}

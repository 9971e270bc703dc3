package autocomplete

import (
	"github.com/iw2rmb/inkwell/engine"
)

func dispatch(v *engine.View, spec engine.TransactionSpec) bool {
	if err := v.Dispatch(spec); err != nil {
		v.Logger().Debug("completion dispatch failed", "error", err)
		return false
	}
	return true
}

// StartCompletion requests suggestions at the cursor.
func StartCompletion(v *engine.View) bool {
	if _, ok := completionField.Get(v.State()); !ok {
		return false
	}
	return dispatch(v, engine.TransactionSpec{Effects: []engine.Effect{startEffect.Of(true)}})
}

// CloseCompletion hides suggestions and drops a pending request.
func CloseCompletion(v *engine.View) bool {
	if completionField.Value(v.State()).status == statusIdle {
		return false
	}
	return dispatch(v, engine.TransactionSpec{Effects: []engine.Effect{closeEffect.Of(struct{}{})}})
}

// AcceptCompletion replaces the completed text with the selected suggestion.
func AcceptCompletion(v *engine.View) bool {
	s := v.State()
	cs := completionField.Value(s)
	if cs.status != statusActive || s.ReadOnly() {
		return false
	}
	c := cs.options[cs.selected]
	at := head(s)
	if cs.from > at {
		return CloseCompletion(v)
	}
	text := c.text()
	sel := engine.CursorSelection(cs.from + len([]rune(text)))
	return dispatch(v, engine.TransactionSpec{
		Changes:        []engine.Change{{From: cs.from, To: at, Insert: text}},
		Selection:      &sel,
		Effects:        []engine.Effect{closeEffect.Of(struct{}{})},
		UserEvent:      "input.complete",
		ScrollIntoView: true,
	})
}

// MoveCompletionSelection moves the highlight by one row, or by a page of
// rows, wrapping around at either end for single steps.
func MoveCompletionSelection(forward, page bool) engine.Command {
	return func(v *engine.View) bool {
		s := v.State()
		cs := completionField.Value(s)
		if cs.status != statusActive {
			return false
		}
		n := len(cs.options)
		step := 1
		if page {
			step = maxRendered(s)
		}
		if !forward {
			step = -step
		}
		next := cs.selected + step
		switch {
		case page:
			next = min(max(next, 0), n-1)
		case next < 0:
			next = n - 1
		case next >= n:
			next = 0
		}
		return dispatch(v, engine.TransactionSpec{Effects: []engine.Effect{selectEffect.Of(next)}})
	}
}

// CompletionKeymap binds the completion commands. Its bindings only act
// while suggestions are shown, except the one starting a request.
var CompletionKeymap = []engine.KeyBinding{
	engine.BindHelp(StartCompletion, "ctrl+space", "complete", "ctrl+@", "ctrl+space"),
	engine.BindHelp(CloseCompletion, "esc", "close completion", "esc"),
	engine.Bind(MoveCompletionSelection(true, false), "down"),
	engine.Bind(MoveCompletionSelection(false, false), "up"),
	engine.Bind(MoveCompletionSelection(true, true), "pgdown"),
	engine.Bind(MoveCompletionSelection(false, true), "pgup"),
	engine.BindHelp(AcceptCompletion, "enter", "accept completion", "enter"),
}

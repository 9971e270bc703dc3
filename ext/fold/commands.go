package fold

import (
	"github.com/iw2rmb/inkwell/engine"
)

func dispatchFold(v *engine.View, lines []int, on bool) bool {
	s := v.State()
	spec := engine.TransactionSpec{Effects: []engine.Effect{foldEffect.Of(foldToggle{lines: lines, on: on})}}
	if on {
		// Cursors inside a new fold move to the end of its header.
		ranges := s.Selection().Ranges()
		moved := false
		for i, r := range ranges {
			at := s.LineAt(r.Head).Number
			for _, n := range lines {
				span, ok := Foldable(s, n)
				if ok && span.Contains(at) {
					header, _ := s.Line(n)
					ranges[i] = engine.Cursor(header.To)
					moved = true
					break
				}
			}
		}
		if moved {
			sel := engine.NewSelection(ranges, s.Selection().MainIndex())
			spec.Selection = &sel
		}
	}
	if err := v.Dispatch(spec); err != nil {
		v.Logger().Debug("fold dispatch failed", "error", err)
		return false
	}
	return true
}

// enclosing returns the nearest header at or above line at whose region
// holds at.
func enclosing(s *engine.State, at int, folded bool) (int, bool) {
	for n := at; n >= 1; n-- {
		span, ok := Foldable(s, n)
		if !ok || (n != at && !span.Contains(at)) {
			continue
		}
		if IsFolded(s, n) == folded {
			return n, true
		}
	}
	return 0, false
}

func hasFoldState(v *engine.View) bool {
	_, ok := foldField.Get(v.State())
	return ok
}

// FoldCode folds the innermost unfolded region around each cursor.
func FoldCode(v *engine.View) bool {
	if !hasFoldState(v) {
		return false
	}
	s := v.State()
	var lines []int
	for _, r := range s.Selection().Ranges() {
		if n, ok := enclosing(s, s.LineAt(r.Head).Number, false); ok {
			lines = append(lines, n)
		}
	}
	if len(lines) == 0 {
		return false
	}
	return dispatchFold(v, lines, true)
}

// UnfoldCode unfolds folds whose header holds a cursor.
func UnfoldCode(v *engine.View) bool {
	if !hasFoldState(v) {
		return false
	}
	s := v.State()
	var lines []int
	for _, r := range s.Selection().Ranges() {
		if n, ok := enclosing(s, s.LineAt(r.Head).Number, true); ok {
			lines = append(lines, n)
		}
	}
	if len(lines) == 0 {
		return false
	}
	return dispatchFold(v, lines, false)
}

// FoldAll folds every outermost foldable region.
func FoldAll(v *engine.View) bool {
	if !hasFoldState(v) {
		return false
	}
	s := v.State()
	var lines []int
	for n := 1; n <= s.Lines(); n++ {
		if span, ok := Foldable(s, n); ok {
			lines = append(lines, n)
			n = span.To
		}
	}
	if len(lines) == 0 {
		return false
	}
	return dispatchFold(v, lines, true)
}

// UnfoldAll removes every fold.
func UnfoldAll(v *engine.View) bool {
	if !hasFoldState(v) || len(foldField.Value(v.State())) == 0 {
		return false
	}
	if err := v.Dispatch(engine.TransactionSpec{Effects: []engine.Effect{unfoldAllEffect.Of(struct{}{})}}); err != nil {
		v.Logger().Debug("fold dispatch failed", "error", err)
		return false
	}
	return true
}

// FoldKeymap binds the fold commands.
var FoldKeymap = []engine.KeyBinding{
	engine.BindHelp(FoldCode, "alt+[", "fold", "alt+["),
	engine.BindHelp(UnfoldCode, "alt+]", "unfold", "alt+]"),
	engine.BindHelp(FoldAll, "ctrl+alt+[", "fold all", "ctrl+alt+["),
	engine.BindHelp(UnfoldAll, "ctrl+alt+]", "unfold all", "ctrl+alt+]"),
}

package commands

import (
	"strings"

	"github.com/iw2rmb/inkwell/engine"
)

var closeBrackets = map[string]string{"(": ")", "[": "]", "{": "}", "'": "'", "\"": "\"", "`": "`"}

func isCloser(text string) bool {
	return strings.Contains(")]}'\"`", text) && len(text) == 1
}

// CloseBrackets inserts the matching closing bracket when an opening one is
// typed, wraps non-empty ranges, and steps over an already present closer.
func CloseBrackets() engine.Extension {
	return engine.InputHandlers.Of(handleBracketInput)
}

func handleBracketInput(v *engine.View, _, _ int, text string) bool {
	s := v.State()
	closing, opens := closeBrackets[text]
	if !opens && !isCloser(text) {
		return false
	}
	n := len([]rune(text))

	// Step over: every range is a cursor sitting in front of text.
	stepOver := isCloser(text)
	for _, r := range s.Selection().Ranges() {
		if !r.Empty() || s.Slice(r.Head, r.Head+n) != text {
			stepOver = false
			break
		}
	}
	if stepOver {
		ranges := s.Selection().Ranges()
		for i, r := range ranges {
			ranges[i] = engine.Cursor(r.Head + n)
		}
		sel := engine.NewSelection(ranges, s.Selection().MainIndex())
		return dispatch(v, engine.TransactionSpec{Selection: &sel, UserEvent: "input.type"})
	}
	if !opens {
		return false
	}

	spec := s.ChangeByRange(func(r engine.SelectionRange) engine.RangeChange {
		if r.Empty() {
			return engine.RangeChange{
				Changes: []engine.Change{{From: r.Head, To: r.Head, Insert: text + closing}},
				Range:   engine.Cursor(r.Head + n),
			}
		}
		return engine.RangeChange{
			Changes: []engine.Change{
				{From: r.From(), To: r.From(), Insert: text},
				{From: r.To(), To: r.To(), Insert: closing},
			},
			Range: engine.Range(r.Anchor+n, r.Head+n),
		}
	})
	spec.UserEvent = "input.type"
	return dispatch(v, spec)
}

// DeleteBracketPair deletes both halves of an empty bracket pair around each
// cursor.
func DeleteBracketPair(v *engine.View) bool {
	if !editable(v) {
		return false
	}
	s := v.State()
	for _, r := range s.Selection().Ranges() {
		if !r.Empty() || !insidePair(s, r.Head) {
			return false
		}
	}
	spec := s.ChangeByRange(func(r engine.SelectionRange) engine.RangeChange {
		return engine.RangeChange{
			Changes: []engine.Change{{From: r.Head - 1, To: r.Head + 1}},
			Range:   engine.Cursor(r.Head - 1),
		}
	})
	spec.UserEvent = "delete.backward"
	return dispatch(v, spec)
}

func insidePair(s *engine.State, pos int) bool {
	if pos < 1 || pos >= s.Len() {
		return false
	}
	closing, ok := closeBrackets[s.Slice(pos-1, pos)]
	return ok && s.Slice(pos, pos+1) == closing
}

// CloseBracketsKeymap deletes bracket pairs on backspace.
var CloseBracketsKeymap = []engine.KeyBinding{
	engine.Bind(DeleteBracketPair, "backspace"),
}

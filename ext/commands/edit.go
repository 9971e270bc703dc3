package commands

import (
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

func editable(v *engine.View) bool {
	return !v.State().ReadOnly() && engine.Editable.Get(v.State())
}

func deleteBy(v *engine.View, m buffer.Move, event string) bool {
	if !editable(v) {
		return false
	}
	s := v.State()
	changed := false
	spec := s.ChangeByRange(func(r engine.SelectionRange) engine.RangeChange {
		from, to := r.From(), r.To()
		if r.Empty() {
			target := s.Move(r.Head, m)
			from, to = min(r.Head, target), max(r.Head, target)
		}
		if from == to {
			return engine.RangeChange{Range: r}
		}
		changed = true
		return engine.RangeChange{
			Changes: []engine.Change{{From: from, To: to}},
			Range:   engine.Cursor(from),
		}
	})
	if !changed {
		return false
	}
	spec.UserEvent = event
	return dispatch(v, spec)
}

var (
	DeleteCharBackward = func(v *engine.View) bool {
		return deleteBy(v, buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft}, "delete.backward")
	}
	DeleteCharForward = func(v *engine.View) bool {
		return deleteBy(v, buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight}, "delete.forward")
	}
	DeleteWordBackward = func(v *engine.View) bool {
		return deleteBy(v, buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft}, "delete.backward")
	}
	DeleteWordForward = func(v *engine.View) bool {
		return deleteBy(v, buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight}, "delete.forward")
	}
	DeleteToLineStart = func(v *engine.View) bool {
		return deleteBy(v, buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome}, "delete.backward")
	}
	DeleteToLineEnd = func(v *engine.View) bool {
		return deleteBy(v, buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd}, "delete.forward")
	}
)

var brackets = map[rune]rune{'(': ')', '[': ']', '{': '}'}

func leadingSpace(text string) string {
	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}

func runeAt(s *engine.State, off int) rune {
	if off < 0 || off >= s.Len() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.Slice(off, off+1))
	return r
}

// InsertNewlineAndIndent replaces each range with a newline followed by the
// line's indentation. Between a bracket pair the closing bracket moves to its
// own line.
func InsertNewlineAndIndent(v *engine.View) bool {
	if !editable(v) {
		return false
	}
	s := v.State()
	unit := engine.IndentUnit.Get(s)
	spec := s.ChangeByRange(func(r engine.SelectionRange) engine.RangeChange {
		line := s.LineAt(r.From())
		col := r.From() - line.From
		indent := leadingSpace(string([]rune(line.Text)[:col]))
		insert := "\n" + indent
		cursor := r.From() + utf8.RuneCountInString(insert)
		if closing, ok := brackets[runeAt(s, r.From()-1)]; ok && r.Empty() && runeAt(s, r.To()) == closing {
			insert = "\n" + indent + unit + "\n" + indent
			cursor = r.From() + 1 + utf8.RuneCountInString(indent+unit)
		}
		return engine.RangeChange{
			Changes: []engine.Change{{From: r.From(), To: r.To(), Insert: insert}},
			Range:   engine.Cursor(cursor),
		}
	})
	spec.UserEvent = "input"
	return dispatch(v, spec)
}

// selectedLines returns the line numbers touched by the selection, in order.
func selectedLines(s *engine.State) []buffer.Line {
	var out []buffer.Line
	last := 0
	for _, r := range s.Selection().Ranges() {
		from := s.LineAt(r.From()).Number
		to := s.LineAt(r.To()).Number
		if !r.Empty() && to > from && s.LineAt(r.To()).From == r.To() {
			to--
		}
		for n := max(from, last+1); n <= to; n++ {
			line, _ := s.Line(n)
			out = append(out, line)
			last = n
		}
	}
	return out
}

func shiftSelection(sel engine.Selection, changes []engine.Change) engine.Selection {
	mapPos := func(pos int) int {
		delta := 0
		for _, c := range changes {
			switch {
			case c.To <= pos || (c.From == c.To && c.From <= pos):
				delta += utf8.RuneCountInString(c.Insert) - (c.To - c.From)
			case c.From < pos:
				delta -= pos - c.From
			}
		}
		return pos + delta
	}
	ranges := sel.Ranges()
	for i, r := range ranges {
		ranges[i] = engine.Range(mapPos(r.Anchor), mapPos(r.Head))
	}
	return engine.NewSelection(ranges, sel.MainIndex())
}

// IndentMore adds one indent unit to every selected line.
func IndentMore(v *engine.View) bool {
	if !editable(v) {
		return false
	}
	s := v.State()
	unit := engine.IndentUnit.Get(s)
	var changes []engine.Change
	for _, line := range selectedLines(s) {
		changes = append(changes, engine.Change{From: line.From, To: line.From, Insert: unit})
	}
	sel := shiftSelection(s.Selection(), changes)
	return dispatch(v, engine.TransactionSpec{Changes: changes, Selection: &sel, UserEvent: "input.indent", ScrollIntoView: true})
}

// IndentLess removes up to one indent unit from every selected line.
func IndentLess(v *engine.View) bool {
	if !editable(v) {
		return false
	}
	s := v.State()
	width := max(utf8.RuneCountInString(engine.IndentUnit.Get(s)), 1)
	var changes []engine.Change
	for _, line := range selectedLines(s) {
		n := 0
		for _, r := range line.Text {
			if r == '\t' && n == 0 {
				n = 1
				break
			}
			if r != ' ' || n == width {
				break
			}
			n++
		}
		if n > 0 {
			changes = append(changes, engine.Change{From: line.From, To: line.From + n})
		}
	}
	if len(changes) == 0 {
		return false
	}
	sel := shiftSelection(s.Selection(), changes)
	return dispatch(v, engine.TransactionSpec{Changes: changes, Selection: &sel, UserEvent: "delete.dedent", ScrollIntoView: true})
}

// InsertTab inserts an indent unit in place of each range.
func InsertTab(v *engine.View) bool {
	if !editable(v) {
		return false
	}
	spec := v.State().ReplaceSelection(engine.IndentUnit.Get(v.State()))
	spec.UserEvent = "input"
	return dispatch(v, spec)
}

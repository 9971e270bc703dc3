package commands

import (
	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

func dispatch(v *engine.View, spec engine.TransactionSpec) bool {
	if err := v.Dispatch(spec); err != nil {
		v.Logger().Debug("command dispatch failed", "event", spec.UserEvent, "error", err)
		return false
	}
	return true
}

func moveSelection(v *engine.View, m buffer.Move, extend bool) bool {
	s := v.State()
	sel := s.Selection()
	ranges := sel.Ranges()
	horizontal := m.Unit == buffer.MoveGrapheme && (m.Dir == buffer.DirLeft || m.Dir == buffer.DirRight)
	for i, r := range ranges {
		if !extend && !r.Empty() && horizontal {
			if m.Dir == buffer.DirLeft {
				ranges[i] = engine.Cursor(r.From())
			} else {
				ranges[i] = engine.Cursor(r.To())
			}
			continue
		}
		head := s.Move(r.Head, m)
		if extend {
			ranges[i] = engine.Range(r.Anchor, head)
		} else {
			ranges[i] = engine.Cursor(head)
		}
	}
	next := engine.NewSelection(ranges, sel.MainIndex())
	event := "select"
	if !extend {
		event = "select.move"
	}
	return dispatch(v, engine.TransactionSpec{Selection: &next, UserEvent: event, ScrollIntoView: true})
}

func mover(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) engine.Command {
	return func(v *engine.View) bool {
		return moveSelection(v, buffer.Move{Unit: unit, Dir: dir}, extend)
	}
}

// Cursor motion. The Select variants extend the selection instead.
var (
	CursorCharLeft    = mover(buffer.MoveGrapheme, buffer.DirLeft, false)
	CursorCharRight   = mover(buffer.MoveGrapheme, buffer.DirRight, false)
	CursorLineUp      = mover(buffer.MoveLine, buffer.DirUp, false)
	CursorLineDown    = mover(buffer.MoveLine, buffer.DirDown, false)
	CursorWordLeft    = mover(buffer.MoveWord, buffer.DirLeft, false)
	CursorWordRight   = mover(buffer.MoveWord, buffer.DirRight, false)
	CursorLineStart   = mover(buffer.MoveLine, buffer.DirHome, false)
	CursorLineEnd     = mover(buffer.MoveLine, buffer.DirEnd, false)
	CursorDocStart    = mover(buffer.MoveDoc, buffer.DirHome, false)
	CursorDocEnd      = mover(buffer.MoveDoc, buffer.DirEnd, false)
	SelectCharLeft    = mover(buffer.MoveGrapheme, buffer.DirLeft, true)
	SelectCharRight   = mover(buffer.MoveGrapheme, buffer.DirRight, true)
	SelectLineUp      = mover(buffer.MoveLine, buffer.DirUp, true)
	SelectLineDown    = mover(buffer.MoveLine, buffer.DirDown, true)
	SelectWordLeft    = mover(buffer.MoveWord, buffer.DirLeft, true)
	SelectWordRight   = mover(buffer.MoveWord, buffer.DirRight, true)
	SelectLineStart   = mover(buffer.MoveLine, buffer.DirHome, true)
	SelectLineEnd     = mover(buffer.MoveLine, buffer.DirEnd, true)
	SelectDocStart    = mover(buffer.MoveDoc, buffer.DirHome, true)
	SelectDocEnd      = mover(buffer.MoveDoc, buffer.DirEnd, true)
)

func pageLines(v *engine.View) int {
	w, h := v.Container().Size()
	_, h = engine.Sizes.Get(v.State()).Resolve(w, h)
	return max(h-1, 1)
}

func pager(dir buffer.MoveDir, extend bool) engine.Command {
	return func(v *engine.View) bool {
		s := v.State()
		sel := s.Selection()
		ranges := sel.Ranges()
		n := pageLines(v)
		for i, r := range ranges {
			head := r.Head
			for j := 0; j < n; j++ {
				head = s.Move(head, buffer.Move{Unit: buffer.MoveLine, Dir: dir})
			}
			if extend {
				ranges[i] = engine.Range(r.Anchor, head)
			} else {
				ranges[i] = engine.Cursor(head)
			}
		}
		next := engine.NewSelection(ranges, sel.MainIndex())
		return dispatch(v, engine.TransactionSpec{Selection: &next, UserEvent: "select.move", ScrollIntoView: true})
	}
}

var (
	CursorPageUp   = pager(buffer.DirUp, false)
	CursorPageDown = pager(buffer.DirDown, false)
	SelectPageUp   = pager(buffer.DirUp, true)
	SelectPageDown = pager(buffer.DirDown, true)
)

// SelectAll selects the whole document.
func SelectAll(v *engine.View) bool {
	sel := engine.SingleSelection(0, v.State().Len())
	return dispatch(v, engine.TransactionSpec{Selection: &sel, UserEvent: "select"})
}

// SimplifySelection drops secondary ranges, or collapses a single range to
// its head.
func SimplifySelection(v *engine.View) bool {
	sel := v.State().Selection()
	var next engine.Selection
	switch {
	case sel.Len() > 1:
		next = sel.AsSingle()
	case !sel.Main().Empty():
		next = engine.CursorSelection(sel.Main().Head)
	default:
		return false
	}
	return dispatch(v, engine.TransactionSpec{Selection: &next, UserEvent: "select"})
}

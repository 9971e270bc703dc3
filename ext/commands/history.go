package commands

import (
	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

type snapshot struct {
	text string
	sel  engine.Selection
}

type historyState struct {
	h         buffer.History[snapshot]
	lastEvent string
}

var setHistory = engine.DefineEffect[historyState]("history.set")

func snapshotOf(s *engine.State) snapshot {
	return snapshot{text: s.Text(), sel: s.Selection()}
}

var historyField = engine.DefineField(engine.FieldSpec[historyState]{
	Create: func(*engine.State) historyState {
		return historyState{h: buffer.NewHistory[snapshot](buffer.DefaultHistoryLimit)}
	},
	Update: func(hs historyState, tr *engine.Transaction) historyState {
		if set := setHistory.In(tr); len(set) > 0 {
			return set[len(set)-1]
		}
		if !tr.DocChanged() {
			if tr.Selection != nil {
				hs.lastEvent = ""
			}
			return hs
		}
		if add, ok := engine.AddToHistory.Get(tr); ok && !add {
			return hs
		}
		// Consecutive typing collapses into one undo step.
		if tr.UserEvent == "input.type" && hs.lastEvent == "input.type" {
			return hs
		}
		hs.h = hs.h.Record(snapshotOf(tr.StartState))
		hs.lastEvent = tr.UserEvent
		return hs
	},
})

// History records document snapshots for Undo and Redo.
func History() engine.Extension { return historyField }

func restore(v *engine.View, redo bool) bool {
	s := v.State()
	hs, ok := historyField.Get(s)
	if !ok || s.ReadOnly() {
		return false
	}
	var snap snapshot
	var moved bool
	if redo {
		hs.h, snap, moved = hs.h.Redo(snapshotOf(s))
	} else {
		hs.h, snap, moved = hs.h.Undo(snapshotOf(s))
	}
	if !moved {
		return false
	}
	hs.lastEvent = ""
	event := "undo"
	if redo {
		event = "redo"
	}
	sel := snap.sel
	return dispatch(v, engine.TransactionSpec{
		Changes:        []engine.Change{{From: 0, To: s.Len(), Insert: snap.text}},
		Selection:      &sel,
		Effects:        []engine.Effect{setHistory.Of(hs)},
		UserEvent:      event,
		ScrollIntoView: true,
	})
}

func Undo(v *engine.View) bool { return restore(v, false) }

func Redo(v *engine.View) bool { return restore(v, true) }

// UndoDepth returns the number of available undo and redo steps.
func UndoDepth(s *engine.State) (undo, redo int) {
	hs, ok := historyField.Get(s)
	if !ok {
		return 0, 0
	}
	return hs.h.Depth()
}

package buffer

// DefaultHistoryLimit bounds undo depth when no limit is given.
const DefaultHistoryLimit = 1000

// History is a bounded undo/redo stack of snapshots.
//
// History is a value: every method returns the next History and leaves the
// receiver untouched, so it can live inside immutable editor state.
type History[T any] struct {
	undo  []T
	redo  []T
	limit int
}

func NewHistory[T any](limit int) History[T] {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return History[T]{limit: limit}
}

func (h History[T]) CanUndo() bool { return len(h.undo) > 0 }

func (h History[T]) CanRedo() bool { return len(h.redo) > 0 }

func (h History[T]) Depth() (undo, redo int) { return len(h.undo), len(h.redo) }

// Record pushes prev as an undo point and clears the redo stack.
func (h History[T]) Record(prev T) History[T] {
	if h.limit <= 0 {
		return h
	}
	undo := append(append([]T(nil), h.undo...), prev)
	if len(undo) > h.limit {
		undo = undo[len(undo)-h.limit:]
	}
	return History[T]{undo: undo, limit: h.limit}
}

// Undo pops the latest undo point. cur becomes the newest redo point.
func (h History[T]) Undo(cur T) (History[T], T, bool) {
	var zero T
	if len(h.undo) == 0 {
		return h, zero, false
	}
	i := len(h.undo) - 1
	prev := h.undo[i]
	next := History[T]{
		undo:  append([]T(nil), h.undo[:i]...),
		redo:  append(append([]T(nil), h.redo...), cur),
		limit: h.limit,
	}
	return next, prev, true
}

// Redo pops the latest redo point. cur becomes the newest undo point.
func (h History[T]) Redo(cur T) (History[T], T, bool) {
	var zero T
	if len(h.redo) == 0 {
		return h, zero, false
	}
	i := len(h.redo) - 1
	target := h.redo[i]
	undo := append(append([]T(nil), h.undo...), cur)
	if h.limit > 0 && len(undo) > h.limit {
		undo = undo[len(undo)-h.limit:]
	}
	next := History[T]{
		undo:  undo,
		redo:  append([]T(nil), h.redo[:i]...),
		limit: h.limit,
	}
	return next, target, true
}

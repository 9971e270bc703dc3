package buffer

import "testing"

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	h := NewHistory[string](0)
	h = h.Record("a")
	h = h.Record("ab")

	h, prev, ok := h.Undo("abc")
	if !ok || prev != "ab" {
		t.Fatalf("undo: got %q (%v), want %q", prev, ok, "ab")
	}
	h, prev, ok = h.Undo(prev)
	if !ok || prev != "a" {
		t.Fatalf("second undo: got %q (%v), want %q", prev, ok, "a")
	}
	if h.CanUndo() {
		t.Fatalf("undo stack must be empty")
	}

	h, next, ok := h.Redo(prev)
	if !ok || next != "ab" {
		t.Fatalf("redo: got %q (%v), want %q", next, ok, "ab")
	}
	if undo, redo := h.Depth(); undo != 1 || redo != 1 {
		t.Fatalf("depth: got (%d,%d), want (1,1)", undo, redo)
	}

	h = h.Record("x")
	if h.CanRedo() {
		t.Fatalf("record must clear redo")
	}
}

func TestHistory_IsAValue(t *testing.T) {
	h0 := NewHistory[int](0).Record(1)
	h1 := h0.Record(2)

	if undo, _ := h0.Depth(); undo != 1 {
		t.Fatalf("receiver mutated: undo depth %d", undo)
	}
	if undo, _ := h1.Depth(); undo != 2 {
		t.Fatalf("next: undo depth %d, want 2", undo)
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory[int](2)
	for i := 0; i < 5; i++ {
		h = h.Record(i)
	}
	if undo, _ := h.Depth(); undo != 2 {
		t.Fatalf("undo depth: got %d, want 2", undo)
	}
	_, prev, _ := h.Undo(5)
	if prev != 4 {
		t.Fatalf("newest undo point: got %d, want 4", prev)
	}
}

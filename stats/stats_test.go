package stats

import (
	"testing"

	"github.com/iw2rmb/inkwell/engine"
)

func newState(t *testing.T, doc string, sel *engine.Selection, exts ...engine.Extension) *engine.State {
	t.Helper()
	s, err := engine.NewState(engine.StateConfig{Doc: doc, Selection: sel, Extensions: exts})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return s
}

func TestFromState_CursorOnly(t *testing.T) {
	sel := engine.CursorSelection(5)
	st := FromState(newState(t, "abc\ndef", &sel, engine.TabSize.Of(2), engine.ReadOnly.Of(true)))

	if st.Length != 7 || st.LineCount != 2 {
		t.Fatalf("length/lines: got %d/%d", st.Length, st.LineCount)
	}
	if st.Line.Number != 2 || st.Line.Text != "def" || st.Line.From != 4 {
		t.Fatalf("line: got %+v", st.Line)
	}
	if !st.ReadOnly || st.TabSize != 2 || st.LineBreak != "\n" {
		t.Fatalf("flags: readOnly %v tab %d break %q", st.ReadOnly, st.TabSize, st.LineBreak)
	}
	if st.SelectedText || st.SelectionCode != "" {
		t.Fatalf("selection: selectedText %v code %q", st.SelectedText, st.SelectionCode)
	}
	if len(st.Selections) != 1 || st.Selections[0] != "" {
		t.Fatalf("selections: got %q", st.Selections)
	}
}

func TestFromState_TwoRangesOneEmpty(t *testing.T) {
	sel := engine.NewSelection([]engine.SelectionRange{engine.Range(6, 9), engine.Cursor(1)}, 0)
	st := FromState(newState(t, "hello world", &sel, engine.AllowMultipleSelections.Of(true)))

	if !st.SelectedText {
		t.Fatalf("selectedText: got false, want true")
	}
	if len(st.Selections) != 2 || len(st.Ranges) != 2 {
		t.Fatalf("selections: got %q ranges %v", st.Selections, st.Ranges)
	}
	if st.Ranges[0].From() >= st.Ranges[1].From() {
		t.Fatalf("ranges not ordered: %v", st.Ranges)
	}
	if st.Selections[0] != "" || st.Selections[1] != "wor" {
		t.Fatalf("selections: got %q", st.Selections)
	}
	if st.SelectionCode != "wor" {
		t.Fatalf("selectionCode: got %q, want %q", st.SelectionCode, "wor")
	}
	if st.SelectionAsSingle != engine.Range(6, 9) {
		t.Fatalf("selectionAsSingle: got %v", st.SelectionAsSingle)
	}
	if st.Line.Number != 1 {
		t.Fatalf("line: got %d", st.Line.Number)
	}
}

func TestFromUpdate_LengthTracksLiveDocument(t *testing.T) {
	s := newState(t, "", nil)
	for _, insert := range []string{"a", "bc", "\n", "déf"} {
		tr, err := s.Update(engine.TransactionSpec{Changes: []engine.Change{{From: s.Len(), To: s.Len(), Insert: insert}}})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		st := FromUpdate(engine.Update{State: tr.State, StartState: s, Transactions: []*engine.Transaction{tr}})
		if st.Length != tr.State.Len() {
			t.Fatalf("length: got %d, want %d", st.Length, tr.State.Len())
		}
		s = tr.State
	}
}

func TestCountWords(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "   ", want: 0},
		{text: "one", want: 1},
		{text: "one two  three", want: 3},
		{text: "a.b-c_d", want: 3},
		{text: "x = 42;\nfoo(bar)", want: 4},
		{text: "héllo wörld", want: 2},
		{text: "na\u00efve caf\u00e9", want: 2},
		{text: "e\u0301t\u00e9 x", want: 2},
		{text: "\u65e5\u672c \u8a9e", want: 2},
		{text: "\u00a0a\u00a0", want: 1},
	}
	for _, tc := range cases {
		if got := CountWords(tc.text); got != tc.want {
			t.Fatalf("CountWords(%q): got %d, want %d", tc.text, got, tc.want)
		}
	}
}

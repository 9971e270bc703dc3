package fold

import (
	"slices"
	"strings"
	"testing"

	"github.com/iw2rmb/inkwell/engine"
)

const sample = "func a() {\n  x\n  if y {\n    z\n  }\n}\nb"

func newView(t *testing.T, doc string, cursor int, exts ...engine.Extension) *engine.View {
	t.Helper()
	sel := engine.CursorSelection(cursor)
	s, err := engine.NewState(engine.StateConfig{Doc: doc, Selection: &sel, Extensions: exts})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	c := engine.NewContainer("test")
	c.Resize(40, 0)
	v, err := engine.NewView(engine.ViewConfig{State: s, Parent: c})
	if err != nil {
		t.Fatalf("new view: %v", err)
	}
	return v
}

func offsetOfLine(s *engine.State, n int) int {
	line, _ := s.Line(n)
	return line.From
}

func TestIndentFold(t *testing.T) {
	s, err := engine.NewState(engine.StateConfig{Doc: sample + "\n\n  tail\n\nc"})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	cases := []struct {
		line int
		want engine.LineSpan
		ok   bool
	}{
		{line: 1, want: engine.LineSpan{From: 2, To: 5}, ok: true},
		{line: 3, want: engine.LineSpan{From: 4, To: 4}, ok: true},
		{line: 2},
		{line: 6},
		{line: 7, want: engine.LineSpan{From: 8, To: 9}, ok: true},
		{line: 8},
	}
	for _, tc := range cases {
		got, ok := IndentFold(s, tc.line)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("line %d: got %v %v, want %v %v", tc.line, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFoldCodeAndUnfold(t *testing.T) {
	v := newView(t, sample, 0, FoldGutter(Options{}))
	s := v.State()
	v.Dispatch(engine.TransactionSpec{Selection: ptr(engine.CursorSelection(offsetOfLine(s, 4) + 4))})

	if !FoldCode(v) {
		t.Fatalf("fold: got false")
	}
	if got := FoldedLines(v.State()); !slices.Equal(got, []int{3}) {
		t.Fatalf("folded: got %v, want [3]", got)
	}
	header, _ := v.State().Line(3)
	if got := v.State().Selection().Main(); got != engine.Cursor(header.To) {
		t.Fatalf("cursor: got %v, want end of header %d", got, header.To)
	}

	if !FoldCode(v) {
		t.Fatalf("second fold: got false")
	}
	if got := FoldedLines(v.State()); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("folded: got %v, want [1 3]", got)
	}
	if got := v.Container().Content(); !strings.Contains(got, "func a() { … ") || strings.Contains(got, "if y") {
		t.Fatalf("content:\n%s", got)
	}

	if !UnfoldCode(v) {
		t.Fatalf("unfold: got false")
	}
	if got := FoldedLines(v.State()); !slices.Equal(got, []int{3}) {
		t.Fatalf("folded after unfold: got %v, want [3]", got)
	}
	if !UnfoldAll(v) {
		t.Fatalf("unfold all: got false")
	}
	if UnfoldAll(v) {
		t.Fatalf("unfold all with nothing folded: got true")
	}
}

func TestFoldAllFoldsOutermostRegions(t *testing.T) {
	v := newView(t, sample+"\nd\n  e", 0, FoldGutter(Options{}))
	if !FoldAll(v) {
		t.Fatalf("fold all: got false")
	}
	if got := FoldedLines(v.State()); !slices.Equal(got, []int{1, 8}) {
		t.Fatalf("folded: got %v, want [1 8]", got)
	}
}

func TestFoldGutterMarkersAndClick(t *testing.T) {
	v := newView(t, sample, 0, FoldGutter(Options{OpenText: "⯆", ClosedText: "⯈"}))
	rows := strings.Split(v.Container().Content(), "\n")
	if !strings.HasPrefix(rows[0], "⯆ func") || !strings.HasPrefix(rows[1], "  ") {
		t.Fatalf("rows: got %q", rows[:2])
	}
	if !v.HandleClick(0, 0) {
		t.Fatalf("click: not handled")
	}
	rows = strings.Split(v.Container().Content(), "\n")
	if !strings.HasPrefix(rows[0], "⯈ func") || len(rows) != 3 {
		t.Fatalf("folded rows: got %q", rows)
	}
	if !v.HandleClick(0, 0) {
		t.Fatalf("second click: not handled")
	}
	if len(FoldedLines(v.State())) != 0 {
		t.Fatalf("folded: got %v, want none", FoldedLines(v.State()))
	}
}

func TestFoldsFollowEdits(t *testing.T) {
	v := newView(t, sample, 0, FoldGutter(Options{}), engine.Keymap(FoldKeymap...))
	v.Dispatch(engine.TransactionSpec{Selection: ptr(engine.CursorSelection(offsetOfLine(v.State(), 3)))})
	if !v.HandleKey("alt+[") {
		t.Fatalf("alt+[: not handled")
	}
	if err := v.Dispatch(engine.TransactionSpec{Changes: []engine.Change{{From: 0, To: 0, Insert: "// c\n"}}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := FoldedLines(v.State()); !slices.Equal(got, []int{4}) {
		t.Fatalf("folded: got %v, want [4]", got)
	}
}

func TestServicesTakePrecedence(t *testing.T) {
	whole := func(s *engine.State, n int) (engine.LineSpan, bool) {
		if n != 1 {
			return engine.LineSpan{}, false
		}
		return engine.LineSpan{From: 2, To: s.Lines()}, true
	}
	s, err := engine.NewState(engine.StateConfig{Doc: sample, Extensions: []engine.Extension{Services.Of(whole)}})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	if got, _ := Foldable(s, 1); got != (engine.LineSpan{From: 2, To: 7}) {
		t.Fatalf("line 1: got %v", got)
	}
	if got, ok := Foldable(s, 3); !ok || got != (engine.LineSpan{From: 4, To: 4}) {
		t.Fatalf("line 3 falls back to indentation: got %v %v", got, ok)
	}
}

func ptr[T any](v T) *T { return &v }

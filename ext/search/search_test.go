package search

import (
	"slices"
	"testing"

	"github.com/iw2rmb/inkwell/engine"
)

func newView(t *testing.T, doc string, sel engine.Selection, exts ...engine.Extension) *engine.View {
	t.Helper()
	exts = append([]engine.Extension{engine.AllowMultipleSelections.Of(true)}, exts...)
	s, err := engine.NewState(engine.StateConfig{Doc: doc, Selection: &sel, Extensions: exts})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	v, err := engine.NewView(engine.ViewConfig{State: s, Parent: engine.NewContainer("")})
	if err != nil {
		t.Fatalf("new view: %v", err)
	}
	return v
}

func TestFindAll(t *testing.T) {
	cases := []struct {
		text, query string
		sensitive   bool
		want        []Match
	}{
		{text: "aaaa", query: "aa", sensitive: true, want: []Match{{0, 2}, {2, 4}}},
		{text: "Foo foo", query: "foo", sensitive: true, want: []Match{{4, 7}}},
		{text: "Foo foo", query: "foo", want: []Match{{0, 3}, {4, 7}}},
		{text: "héllo héllo", query: "llo", sensitive: true, want: []Match{{2, 5}, {8, 11}}},
		{text: "abc", query: "", want: nil},
	}
	for _, tc := range cases {
		if got := FindAll(tc.text, tc.query, tc.sensitive); !slices.Equal(got, tc.want) {
			t.Fatalf("FindAll(%q, %q): got %v, want %v", tc.text, tc.query, got, tc.want)
		}
	}
}

func TestSelectNextOccurrence(t *testing.T) {
	v := newView(t, "foo bar foo baz foo", engine.CursorSelection(1), engine.Keymap(SearchKeymap...))

	if !v.HandleKey("ctrl+d") {
		t.Fatalf("ctrl+d: not handled")
	}
	if got := v.State().Selection().Main(); got != engine.Range(0, 3) {
		t.Fatalf("word: got %v, want %v", got, engine.Range(0, 3))
	}
	v.HandleKey("ctrl+d")
	v.HandleKey("ctrl+d")
	sel := v.State().Selection()
	if sel.Len() != 3 || sel.Main() != engine.Range(16, 19) {
		t.Fatalf("selection: got %v (main %v)", sel.Ranges(), sel.Main())
	}
	if v.HandleKey("ctrl+d") {
		t.Fatalf("ctrl+d with every occurrence selected: got true")
	}
}

func TestSelectSelectionMatches(t *testing.T) {
	v := newView(t, "ab x ab y ab", engine.SingleSelection(5, 7))
	if !SelectSelectionMatches(v) {
		t.Fatalf("select matches: got false")
	}
	sel := v.State().Selection()
	want := []engine.SelectionRange{engine.Range(0, 2), engine.Range(5, 7), engine.Range(10, 12)}
	if !slices.Equal(sel.Ranges(), want) {
		t.Fatalf("ranges: got %v, want %v", sel.Ranges(), want)
	}
	if sel.Main() != engine.Range(5, 7) {
		t.Fatalf("main: got %v", sel.Main())
	}
}

func TestFindNextAndPrevious(t *testing.T) {
	v := newView(t, "one two one two one", engine.CursorSelection(0), Search())
	if !SetQuery(v, Query{Search: "ONE"}) {
		t.Fatalf("set query: got false")
	}
	if GetQuery(v.State()).Search != "ONE" {
		t.Fatalf("query: got %q", GetQuery(v.State()).Search)
	}
	steps := []struct {
		forward bool
		want    engine.SelectionRange
	}{
		{forward: true, want: engine.Range(0, 3)},
		{forward: true, want: engine.Range(8, 11)},
		{forward: true, want: engine.Range(16, 19)},
		{forward: true, want: engine.Range(0, 3)},
		{forward: false, want: engine.Range(16, 19)},
		{forward: false, want: engine.Range(8, 11)},
	}
	for i, step := range steps {
		if step.forward {
			FindNext(v)
		} else {
			FindPrevious(v)
		}
		if got := v.State().Selection().Main(); got != step.want {
			t.Fatalf("step %d: got %v, want %v", i, got, step.want)
		}
	}
}

func TestHighlightSelectionMatches(t *testing.T) {
	s, err := engine.NewState(engine.StateConfig{
		Doc:       "foo food foo",
		Selection: ptr(engine.SingleSelection(0, 3)),
	})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	line, _ := s.Line(1)
	got := highlightMatches(s, line)
	want := []engine.Span{{From: 0, To: 3, Tag: TagSelectionMatch}, {From: 9, To: 12, Tag: TagSelectionMatch}}
	if !slices.Equal(got, want) {
		t.Fatalf("spans: got %v, want %v", got, want)
	}

	partial, err := engine.NewState(engine.StateConfig{
		Doc:       "foo food foo",
		Selection: ptr(engine.SingleSelection(0, 2)),
	})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	if n := len(highlightMatches(partial, line)); n != 3 {
		t.Fatalf("partial word spans: got %d, want 3", n)
	}
}

func ptr[T any](v T) *T { return &v }

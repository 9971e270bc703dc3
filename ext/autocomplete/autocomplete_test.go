package autocomplete

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/ext/commands"
)

func newView(t *testing.T, sched engine.Scheduler, doc string, exts ...engine.Extension) *engine.View {
	t.Helper()
	sel := engine.CursorSelection(len([]rune(doc)))
	s, err := engine.NewState(engine.StateConfig{Doc: doc, Selection: &sel, Extensions: exts})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	c := engine.NewContainer("test")
	c.Resize(40, 10)
	v, err := engine.NewView(engine.ViewConfig{State: s, Parent: c, Scheduler: sched})
	if err != nil {
		t.Fatalf("new view: %v", err)
	}
	t.Cleanup(v.Destroy)
	return v
}

type countingSource struct {
	calls   int
	options []Completion
}

func (c *countingSource) source(context.Context, Context) (*Result, error) {
	c.calls++
	return &Result{From: 0, Options: c.options}, nil
}

func TestMatchBefore(t *testing.T) {
	s, err := engine.NewState(engine.StateConfig{Doc: "let x\nconsole.lo\na$b"})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	cases := []struct {
		name string
		re   string
		pos  int
		want Match
		ok   bool
	}{
		{name: "word", re: `\w+`, pos: 16, want: Match{From: 14, To: 16, Text: "lo"}, ok: true},
		{name: "whole line", re: `.*`, pos: 16, want: Match{From: 6, To: 16, Text: "console.lo"}, ok: true},
		{name: "dotted", re: `[\w.]+`, pos: 16, want: Match{From: 6, To: 16, Text: "console.lo"}, ok: true},
		{name: "must end at cursor", re: `let`, pos: 5},
		{name: "empty line start", re: `.*`, pos: 6, want: Match{From: 6, To: 6}, ok: true},
		{name: "already anchored", re: `\w+$`, pos: 16, want: Match{From: 14, To: 16, Text: "lo"}, ok: true},
		{name: "escaped dollar is a literal", re: `\$`, pos: 20},
		{name: "escaped dollar at cursor", re: `\$`, pos: 19, want: Match{From: 18, To: 19, Text: "$"}, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Context{State: s, Pos: tc.pos}.MatchBefore(regexp.MustCompile(tc.re))
			if ok != tc.ok {
				t.Fatalf("ok: got %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("match: got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAnchorEnd(t *testing.T) {
	cases := []struct {
		re    string
		input string
		want  []int
	}{
		{re: `\w+`, input: "a.bc", want: []int{2, 4}},
		{re: `\$`, input: "$x", want: nil},
		{re: `\$`, input: "x$", want: []int{1, 2}},
		{re: `a|b`, input: "ab", want: []int{1, 2}},
		{re: `x$`, input: "xx", want: []int{1, 2}},
	}
	for _, tc := range cases {
		got := AnchorEnd(regexp.MustCompile(tc.re)).FindStringIndex(tc.input)
		if !slices.Equal(got, tc.want) {
			t.Fatalf("AnchorEnd(%q) on %q: got %v, want %v", tc.re, tc.input, got, tc.want)
		}
	}
}

func TestStartAndAcceptCompletion(t *testing.T) {
	sched := engine.NewManualScheduler()
	v := newView(t, sched, "con", Autocompletion(Config{
		Override: []Source{WordSource("console", "const", "continue", "let")},
	}))

	if !StartCompletion(v) {
		t.Fatalf("start: got false")
	}
	if got := Status(v.State()); got != "pending" {
		t.Fatalf("status: got %q, want pending", got)
	}
	sched.Advance(0)
	if got := Status(v.State()); got != "active" {
		t.Fatalf("status: got %q, want active", got)
	}
	got := Current(v.State())
	if len(got) != 3 || got[0].Label != "console" {
		t.Fatalf("options: got %v", got)
	}
	if !strings.Contains(v.Container().Content(), "continue") {
		t.Fatalf("tooltip not rendered:\n%s", v.Container().Content())
	}

	if !v.HandleKey("down") {
		t.Fatalf("down: not handled")
	}
	if c, _ := Selected(v.State()); c.Label != "const" {
		t.Fatalf("selected: got %q, want const", c.Label)
	}
	if !v.HandleKey("enter") {
		t.Fatalf("enter: not handled")
	}
	if got := v.State().Text(); got != "const" {
		t.Fatalf("text: got %q, want const", got)
	}
	if got := v.State().Selection().Main().Head; got != 5 {
		t.Fatalf("cursor: got %d, want 5", got)
	}
	if Status(v.State()) != "" {
		t.Fatalf("status after accept: got %q", Status(v.State()))
	}
}

func TestTypingRefiltersActiveList(t *testing.T) {
	sched := engine.NewManualScheduler()
	v := newView(t, sched, "co", Autocompletion(Config{
		Override: []Source{WordSource("console", "const", "color")},
	}))
	StartCompletion(v)
	sched.Advance(0)
	if n := len(Current(v.State())); n != 3 {
		t.Fatalf("options: got %d, want 3", n)
	}
	v.InsertText("n")
	if n := len(Current(v.State())); n != 2 {
		t.Fatalf("options after typing: got %d, want 2", n)
	}
	v.InsertText("x")
	if Status(v.State()) != "" {
		t.Fatalf("status with no match: got %q", Status(v.State()))
	}
}

func TestEnterFallsThroughWhenInactive(t *testing.T) {
	v := newView(t, engine.NewManualScheduler(), "ab",
		engine.Keymap(commands.DefaultKeymap...),
		Autocompletion(Config{Override: []Source{WordSource("abc")}}),
	)
	if !v.HandleKey("enter") {
		t.Fatalf("enter: not handled")
	}
	if got := v.State().Text(); got != "ab\n" {
		t.Fatalf("text: got %q", got)
	}
}

func TestRapidTypingRequestsOnce(t *testing.T) {
	sched := engine.NewManualScheduler()
	src := &countingSource{options: []Completion{{Label: "hello"}}}
	v := newView(t, sched, "",
		Autocompletion(Config{Override: []Source{src.source}}),
		DebouncedDisplay(300*time.Millisecond),
	)

	for _, ch := range []string{"h", "e", "l", "l", "o"} {
		v.InsertText(ch)
		sched.Advance(50 * time.Millisecond)
	}
	if src.calls != 0 {
		t.Fatalf("calls before quiet period: got %d, want 0", src.calls)
	}
	sched.Advance(300 * time.Millisecond)
	if src.calls != 1 {
		t.Fatalf("calls: got %d, want 1", src.calls)
	}
	if Status(v.State()) != "active" {
		t.Fatalf("status: got %q, want active", Status(v.State()))
	}

	v.InsertText("!")
	if Status(v.State()) != "" {
		t.Fatalf("typing should close the list, got %q", Status(v.State()))
	}
}

func TestDestroyCancelsPendingWork(t *testing.T) {
	sched := engine.NewManualScheduler()
	src := &countingSource{options: []Completion{{Label: "x"}}}
	v := newView(t, sched, "",
		Autocompletion(Config{Override: []Source{src.source}}),
		DebouncedDisplay(0),
	)
	v.InsertText("a")
	if sched.Pending() != 1 {
		t.Fatalf("pending: got %d, want 1", sched.Pending())
	}
	v.Destroy()
	if sched.Pending() != 0 {
		t.Fatalf("pending after destroy: got %d, want 0", sched.Pending())
	}
	sched.Advance(time.Second)
	if src.calls != 0 {
		t.Fatalf("calls: got %d, want 0", src.calls)
	}
}

func TestNewRequestSupersedesOld(t *testing.T) {
	sched := engine.NewManualScheduler()
	var seen []int
	src := func(ctx context.Context, c Context) (*Result, error) {
		seen = append(seen, c.Pos)
		return &Result{From: 0, Options: []Completion{{Label: "ab"}}}, nil
	}
	v := newView(t, sched, "a", Autocompletion(Config{Override: []Source{src}}))
	StartCompletion(v)
	StartCompletion(v)
	if sched.Pending() != 1 {
		t.Fatalf("pending: got %d, want 1", sched.Pending())
	}
	sched.Advance(0)
	if len(seen) != 1 {
		t.Fatalf("source runs: got %d, want 1", len(seen))
	}
	if Status(v.State()) != "active" {
		t.Fatalf("status: got %q", Status(v.State()))
	}
}

func TestSourceErrorMeansNoSuggestions(t *testing.T) {
	sched := engine.NewManualScheduler()
	failing := func(context.Context, Context) (*Result, error) { return nil, errors.New("offline") }
	v := newView(t, sched, "a", Autocompletion(Config{Override: []Source{failing}}))
	StartCompletion(v)
	sched.Advance(0)
	if Status(v.State()) != "" {
		t.Fatalf("status: got %q, want idle", Status(v.State()))
	}
}

func TestQuerySourceSkipsBlankText(t *testing.T) {
	var queries []string
	src := QuerySource(func(_ context.Context, q string) ([]Completion, error) {
		queries = append(queries, q)
		return []Completion{{Label: q + "!"}}, nil
	})
	for _, doc := range []string{"", "   ", "  fo "} {
		s, err := engine.NewState(engine.StateConfig{Doc: doc})
		if err != nil {
			t.Fatalf("new state: %v", err)
		}
		if _, err := src(context.Background(), Context{State: s, Pos: s.Len()}); err != nil {
			t.Fatalf("source: %v", err)
		}
	}
	if len(queries) != 1 || queries[0] != "fo" {
		t.Fatalf("queries: got %q, want [fo]", queries)
	}
}

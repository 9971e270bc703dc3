package javascript

import (
	"context"
	"slices"
	"testing"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/ext/autocomplete"
	"github.com/iw2rmb/inkwell/ext/fold"
)

func newState(t *testing.T, doc string, exts ...engine.Extension) *engine.State {
	t.Helper()
	s, err := engine.NewState(engine.StateConfig{Doc: doc, Extensions: exts})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return s
}

func highlight(s *engine.State, n int) []engine.Span {
	line, _ := s.Line(n)
	var out []engine.Span
	for _, h := range engine.Highlighters.Get(s) {
		out = append(out, h(s, line)...)
	}
	return out
}

func TestHighlightingTagsTokens(t *testing.T) {
	s := newState(t, `const x = "hi"; // note`, Highlighting())
	want := []engine.Span{
		{From: 0, To: 5, Tag: TagKeyword},
		{From: 8, To: 9, Tag: TagOperator},
		{From: 10, To: 14, Tag: TagString},
		{From: 16, To: 23, Tag: TagComment},
	}
	if got := highlight(s, 1); !slices.Equal(got, want) {
		t.Fatalf("spans: got %v, want %v", got, want)
	}
}

func TestBlockCommentSpansLines(t *testing.T) {
	s := newState(t, "a /* x\ny */ b", Highlighting())
	if got, want := highlight(s, 1), []engine.Span{{From: 2, To: 6, Tag: TagComment}}; !slices.Equal(got, want) {
		t.Fatalf("line 1: got %v, want %v", got, want)
	}
	if got, want := highlight(s, 2), []engine.Span{{From: 0, To: 4, Tag: TagComment}}; !slices.Equal(got, want) {
		t.Fatalf("line 2: got %v, want %v", got, want)
	}
}

func TestCallsAndProperties(t *testing.T) {
	s := newState(t, "obj.run(1)\ngo(1)", Highlighting())
	want := []engine.Span{
		{From: 4, To: 7, Tag: TagPropertyName},
		{From: 7, To: 8, Tag: TagBracket},
		{From: 8, To: 9, Tag: TagNumber},
		{From: 9, To: 10, Tag: TagBracket},
	}
	if got := highlight(s, 1); !slices.Equal(got, want) {
		t.Fatalf("line 1: got %v, want %v", got, want)
	}
	if got := highlight(s, 2); len(got) == 0 || got[0] != (engine.Span{From: 0, To: 2, Tag: TagVariableName}) {
		t.Fatalf("line 2: got %v", got)
	}
}

func TestDialects(t *testing.T) {
	cases := []struct {
		name    string
		dialect Dialect
		doc     string
		want    engine.Span
		present bool
	}{
		{"ts keyword", Dialect{TypeScript: true}, "type A = number", engine.Span{From: 0, To: 4, Tag: TagKeyword}, true},
		{"ts type", Dialect{TypeScript: true}, "type A = number", engine.Span{From: 9, To: 15, Tag: TagTypeName}, true},
		{"plain js type", Dialect{}, "type A = number", engine.Span{From: 9, To: 15, Tag: TagTypeName}, false},
		{"jsx open tag", Dialect{JSX: true}, "x = <div>{a < b}</div>", engine.Span{From: 5, To: 8, Tag: TagTagName}, true},
		{"jsx close tag", Dialect{JSX: true}, "x = <div>{a < b}</div>", engine.Span{From: 18, To: 21, Tag: TagTagName}, true},
		{"comparison", Dialect{JSX: true}, "a<b", engine.Span{From: 2, To: 3, Tag: TagTagName}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newState(t, c.doc, JavaScript(c.dialect))
			if got := slices.Contains(highlight(s, 1), c.want); got != c.present {
				t.Fatalf("%v present: got %v, want %v (spans %v)", c.want, got, c.present, highlight(s, 1))
			}
		})
	}
}

func TestHighlightingFollowsEdits(t *testing.T) {
	s := newState(t, "x", Highlighting())
	tr, err := s.Update(engine.TransactionSpec{Changes: []engine.Change{{From: 0, To: 1, Insert: "return"}}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, want := highlight(tr.State, 1), []engine.Span{{From: 0, To: 6, Tag: TagKeyword}}; !slices.Equal(got, want) {
		t.Fatalf("spans: got %v, want %v", got, want)
	}
}

func TestOffsetsCountRunes(t *testing.T) {
	s := newState(t, `x = "héllo"; f()`, Highlighting())
	want := []engine.Span{
		{From: 2, To: 3, Tag: TagOperator},
		{From: 4, To: 11, Tag: TagString},
		{From: 13, To: 14, Tag: TagVariableName},
		{From: 14, To: 15, Tag: TagBracket},
		{From: 15, To: 16, Tag: TagBracket},
	}
	if got := highlight(s, 1); !slices.Equal(got, want) {
		t.Fatalf("spans: got %v, want %v", got, want)
	}
}

func TestClassNames(t *testing.T) {
	cases := []struct {
		name    string
		dialect Dialect
		doc     string
		want    engine.Span
	}{
		{"declaration", Dialect{}, "class A extends B {}", engine.Span{From: 6, To: 7, Tag: TagClassName}},
		{"heritage", Dialect{}, "class A extends B {}", engine.Span{From: 16, To: 17, Tag: TagClassName}},
		{"new", Dialect{}, "x = new Map()", engine.Span{From: 8, To: 11, Tag: TagClassName}},
		{"interface", Dialect{TypeScript: true}, "interface Point {}", engine.Span{From: 10, To: 15, Tag: TagClassName}},
		{"type reference", Dialect{TypeScript: true}, "let p: Point", engine.Span{From: 7, To: 12, Tag: TagTypeName}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newState(t, c.doc, JavaScript(c.dialect))
			if got := highlight(s, 1); !slices.Contains(got, c.want) {
				t.Fatalf("spans %v: missing %v", got, c.want)
			}
		})
	}
}

func TestBraceFold(t *testing.T) {
	s := newState(t, "call({\na: 1\n})\nx", JavaScript(Dialect{}))
	span, ok := fold.Foldable(s, 1)
	if !ok || span != (engine.LineSpan{From: 2, To: 2}) {
		t.Fatalf("line 1: got %v %v, want {2 2} true", span, ok)
	}
	if _, ok := BraceFold(s, 2); ok {
		t.Fatalf("line 2: got foldable")
	}
	if _, ok := BraceFold(s, 4); ok {
		t.Fatalf("line 4: got foldable")
	}

	s = newState(t, "f() { }\nx", JavaScript(Dialect{}))
	if _, ok := BraceFold(s, 1); ok {
		t.Fatalf("closed on the same line: got foldable")
	}

	s = newState(t, "if (a) {\n  b()\n  c()\n}", JavaScript(Dialect{}))
	if span, ok := BraceFold(s, 1); !ok || span != (engine.LineSpan{From: 2, To: 3}) {
		t.Fatalf("block: got %v %v, want {2 3} true", span, ok)
	}
}

func TestKeywordSourceSkipsStringsAndComments(t *testing.T) {
	src := KeywordSource(Dialect{})
	cases := []struct {
		doc  string
		back int
		want bool
	}{
		{"con", 0, true},
		{`let s = "con"`, 1, false},
		{"// con", 0, false},
		{"/* x */ con", 0, true},
		{"/* con */", 3, false},
		{`f("a") con`, 0, true},
	}
	for _, c := range cases {
		s := newState(t, c.doc, JavaScript(Dialect{}))
		ctx := autocomplete.Context{State: s, Pos: s.Len() - c.back}
		r, err := src(context.Background(), ctx)
		if err != nil {
			t.Fatalf("%q: %v", c.doc, err)
		}
		if got := r != nil; got != c.want {
			t.Fatalf("%q: got result %v, want %v", c.doc, got, c.want)
		}
		if r != nil && !slices.ContainsFunc(r.Options, func(o autocomplete.Completion) bool { return o.Label == "const" }) {
			t.Fatalf("%q: const missing from %v", c.doc, r.Options)
		}
	}
}

func TestKeywordsIncludeTypeScript(t *testing.T) {
	if slices.Contains(Keywords(Dialect{}), "interface") {
		t.Fatalf("plain keywords contain interface")
	}
	ts := Keywords(Dialect{TypeScript: true})
	if !slices.Contains(ts, "interface") || !slices.IsSorted(ts) {
		t.Fatalf("typescript keywords: got %v", ts)
	}
}

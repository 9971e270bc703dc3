package buffer

import "testing"

func TestReplaceRange(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		r       Range
		insert  string
		want    string
		applied AppliedEdit
	}{
		{
			name: "insert", text: "abc", r: Range{Start: Pos{Col: 1}, End: Pos{Col: 1}}, insert: "X", want: "aXbc",
			applied: AppliedEdit{FromBefore: 1, ToBefore: 1, FromAfter: 1, ToAfter: 2, Insert: "X"},
		},
		{
			name: "delete across lines", text: "ab\ncd", r: Range{Start: Pos{Col: 1}, End: Pos{Row: 1, Col: 1}}, want: "ad",
			applied: AppliedEdit{FromBefore: 1, ToBefore: 4, FromAfter: 1, ToAfter: 1, Deleted: "b\nc"},
		},
		{
			name: "multiline insert", text: "ad", r: Range{Start: Pos{Col: 1}, End: Pos{Col: 1}}, insert: "b\nc", want: "ab\ncd",
			applied: AppliedEdit{FromBefore: 1, ToBefore: 1, FromAfter: 1, ToAfter: 4, Insert: "b\nc"},
		},
		{
			name: "reversed and clamped", text: "abc", r: Range{Start: Pos{Row: 5, Col: 99}, End: Pos{Col: 2}}, insert: "Z", want: "abZ",
			applied: AppliedEdit{FromBefore: 2, ToBefore: 3, FromAfter: 2, ToAfter: 3, Insert: "Z", Deleted: "c"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.text)
			got, ok := b.replaceRange(tc.r, tc.insert)
			if !ok {
				t.Fatalf("replace: got no change")
			}
			b.reindex()
			if b.Text() != tc.want {
				t.Fatalf("text: got %q, want %q", b.Text(), tc.want)
			}
			if got != tc.applied {
				t.Fatalf("applied: got %+v, want %+v", got, tc.applied)
			}
			if b.Len() != len([]rune(tc.want)) {
				t.Fatalf("len after reindex: got %d, want %d", b.Len(), len([]rune(tc.want)))
			}
		})
	}
}

func TestReplaceRange_NoOp(t *testing.T) {
	b := New("abc")
	if _, ok := b.replaceRange(Range{Start: Pos{Col: 1}, End: Pos{Col: 1}}, ""); ok {
		t.Fatalf("empty replace reported a change")
	}
	if _, ok := b.replaceRange(Range{End: Pos{Col: 2}}, "ab"); ok {
		t.Fatalf("identical replace reported a change")
	}
	if got := b.Text(); got != "abc" {
		t.Fatalf("text: got %q, want %q", got, "abc")
	}
}

package buffer

import "testing"

func TestMove(t *testing.T) {
	b := New("foo bar\nx\ne\u0301z")

	cases := []struct {
		name string
		off  int
		m    Move
		want int
	}{
		{name: "left at doc start", off: 0, m: Move{Unit: MoveGrapheme, Dir: DirLeft}, want: 0},
		{name: "left wraps to prev line end", off: 8, m: Move{Unit: MoveGrapheme, Dir: DirLeft}, want: 7},
		{name: "right wraps to next line", off: 7, m: Move{Unit: MoveGrapheme, Dir: DirRight}, want: 8},
		{name: "right over combining cluster", off: 10, m: Move{Unit: MoveGrapheme, Dir: DirRight}, want: 12},
		{name: "left over combining cluster", off: 12, m: Move{Unit: MoveGrapheme, Dir: DirLeft}, want: 10},
		{name: "word right", off: 0, m: Move{Unit: MoveWord, Dir: DirRight}, want: 3},
		{name: "word right skips space", off: 3, m: Move{Unit: MoveWord, Dir: DirRight}, want: 7},
		{name: "word left", off: 7, m: Move{Unit: MoveWord, Dir: DirLeft}, want: 4},
		{name: "down clamps column", off: 5, m: Move{Unit: MoveLine, Dir: DirDown}, want: 9},
		{name: "up from first line goes home", off: 5, m: Move{Unit: MoveLine, Dir: DirUp}, want: 0},
		{name: "line end", off: 0, m: Move{Unit: MoveLine, Dir: DirEnd}, want: 7},
		{name: "doc end", off: 0, m: Move{Unit: MoveDoc, Dir: DirEnd}, want: b.Len()},
	}
	for _, tc := range cases {
		if got := b.Move(tc.off, tc.m); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

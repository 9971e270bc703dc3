package engine

import (
	"sort"

	"github.com/iw2rmb/inkwell/buffer"
)

// SelectionRange is one selected span. Anchor stays put when the range is
// extended; Head moves.
type SelectionRange struct {
	Anchor int
	Head   int
}

func Cursor(pos int) SelectionRange { return SelectionRange{Anchor: pos, Head: pos} }

func Range(anchor, head int) SelectionRange { return SelectionRange{Anchor: anchor, Head: head} }

func (r SelectionRange) From() int { return min(r.Anchor, r.Head) }

func (r SelectionRange) To() int { return max(r.Anchor, r.Head) }

func (r SelectionRange) Empty() bool { return r.Anchor == r.Head }

// Map maps the range through changes. Insertions at the edges of a non-empty
// range stay outside of it.
func (r SelectionRange) Map(c buffer.Changes) SelectionRange {
	if c.Empty() {
		return r
	}
	if r.Empty() {
		p := c.MapPos(r.Head, -1)
		return Cursor(p)
	}
	from := c.MapPos(r.From(), 1)
	to := c.MapPos(r.To(), -1)
	if to < from {
		to = from
	}
	if r.Anchor <= r.Head {
		return Range(from, to)
	}
	return Range(to, from)
}

func (r SelectionRange) clamp(n int) SelectionRange {
	return SelectionRange{Anchor: min(max(r.Anchor, 0), n), Head: min(max(r.Head, 0), n)}
}

// Selection is an ordered, non-overlapping set of ranges with one main range.
// The zero Selection is a cursor at offset 0.
type Selection struct {
	ranges []SelectionRange
	main   int
}

// NewSelection sorts ranges by position and merges overlapping ones. main
// indexes the input slice.
func NewSelection(ranges []SelectionRange, main int) Selection {
	if len(ranges) == 0 {
		return Selection{ranges: []SelectionRange{Cursor(0)}}
	}
	main = min(max(main, 0), len(ranges)-1)

	type indexed struct {
		r    SelectionRange
		main bool
	}
	items := make([]indexed, len(ranges))
	for i, r := range ranges {
		items[i] = indexed{r: r, main: i == main}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].r.From() < items[j].r.From() })

	out := make([]SelectionRange, 0, len(items))
	mainIdx := 0
	for _, it := range items {
		if n := len(out); n > 0 {
			prev := out[n-1]
			overlaps := it.r.From() < prev.To()
			if it.r.Empty() {
				overlaps = it.r.From() <= prev.To()
			}
			if overlaps {
				from := min(prev.From(), it.r.From())
				to := max(prev.To(), it.r.To())
				if it.r.Anchor > it.r.Head {
					out[n-1] = Range(to, from)
				} else {
					out[n-1] = Range(from, to)
				}
				if it.main {
					mainIdx = n - 1
				}
				continue
			}
		}
		if it.main {
			mainIdx = len(out)
		}
		out = append(out, it.r)
	}
	return Selection{ranges: out, main: mainIdx}
}

// SingleSelection is a selection with one range.
func SingleSelection(anchor, head int) Selection {
	return Selection{ranges: []SelectionRange{Range(anchor, head)}}
}

// CursorSelection is a selection with one empty range at pos.
func CursorSelection(pos int) Selection {
	return Selection{ranges: []SelectionRange{Cursor(pos)}}
}

func (s Selection) norm() Selection {
	if len(s.ranges) == 0 {
		return Selection{ranges: []SelectionRange{Cursor(0)}}
	}
	return s
}

// Ranges returns the ranges in document order.
func (s Selection) Ranges() []SelectionRange {
	s = s.norm()
	return append([]SelectionRange(nil), s.ranges...)
}

func (s Selection) Main() SelectionRange {
	s = s.norm()
	return s.ranges[s.main]
}

func (s Selection) MainIndex() int { return s.norm().main }

func (s Selection) Len() int { return len(s.norm().ranges) }

// AsSingle keeps only the main range.
func (s Selection) AsSingle() Selection {
	return Selection{ranges: []SelectionRange{s.Main()}}
}

// AddRange adds r, optionally making it the main range.
func (s Selection) AddRange(r SelectionRange, makeMain bool) Selection {
	s = s.norm()
	ranges := append(s.Ranges(), r)
	main := s.main
	if makeMain {
		main = len(ranges) - 1
	}
	return NewSelection(ranges, main)
}

// ReplaceRange replaces the range at index i.
func (s Selection) ReplaceRange(r SelectionRange, i int) Selection {
	ranges := s.Ranges()
	if i < 0 || i >= len(ranges) {
		return s
	}
	ranges[i] = r
	return NewSelection(ranges, s.MainIndex())
}

// Map maps every range through changes.
func (s Selection) Map(c buffer.Changes) Selection {
	s = s.norm()
	if c.Empty() {
		return s
	}
	ranges := make([]SelectionRange, len(s.ranges))
	for i, r := range s.ranges {
		ranges[i] = r.Map(c)
	}
	return NewSelection(ranges, s.main)
}

func (s Selection) Equal(o Selection) bool {
	s, o = s.norm(), o.norm()
	if s.main != o.main || len(s.ranges) != len(o.ranges) {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != o.ranges[i] {
			return false
		}
	}
	return true
}

func (s Selection) clamp(n int) Selection {
	s = s.norm()
	ranges := make([]SelectionRange, len(s.ranges))
	for i, r := range s.ranges {
		ranges[i] = r.clamp(n)
	}
	return NewSelection(ranges, s.main)
}

package buffer

// AppliedEdit describes one effective edit. Before offsets refer to the
// document prior to the batch; After offsets refer to the resulting document.
type AppliedEdit struct {
	FromBefore int
	ToBefore   int
	FromAfter  int
	ToAfter    int
	Insert     string
	Deleted    string
}

// Changes is an ordered (by FromBefore) list of non-overlapping applied edits.
type Changes []AppliedEdit

func (c Changes) Empty() bool { return len(c) == 0 }

// LengthDelta is the change in document length.
func (c Changes) LengthDelta() int {
	d := 0
	for _, e := range c {
		d += (e.ToAfter - e.FromAfter) - (e.ToBefore - e.FromBefore)
	}
	return d
}

// MapPos maps an offset in the old document to the new one.
//
// Positions before an edit shift by the preceding length delta. A position at
// an insertion point, or inside a replaced span, maps to the start of the
// inserted text when assoc <= 0 and to its end when assoc > 0.
func (c Changes) MapPos(pos int, assoc int) int {
	delta := 0
	for _, e := range c {
		if pos < e.FromBefore {
			break
		}
		if pos > e.ToBefore || (pos == e.ToBefore && e.ToBefore > e.FromBefore) {
			delta = e.ToAfter - e.ToBefore
			continue
		}
		if assoc > 0 {
			return e.ToAfter
		}
		return e.FromAfter
	}
	return pos + delta
}

// Touches reports whether any edit touches [from, to] in the old document.
func (c Changes) Touches(from, to int) bool {
	for _, e := range c {
		if e.FromBefore <= to && e.ToBefore >= from {
			return true
		}
	}
	return false
}

package buffer

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

var (
	ErrOutOfRange = errors.New("buffer: edit out of range")
	ErrOverlap    = errors.New("buffer: overlapping edits")
)

// Edit replaces [From, To) with Insert.
type Edit struct {
	From   int
	To     int
	Insert string
}

// Apply applies a batch of edits atomically. Every edit's offsets refer to the
// document as it was before the batch; edits may be given in any order but
// must not overlap. Insertions at the same offset keep their relative order.
//
// Either all edits apply or none do. Edits that do not change the document
// are dropped from the result.
func (b *Buffer) Apply(edits ...Edit) (Changes, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	prevTo := -1
	for i, e := range sorted {
		if e.From < 0 || e.To < e.From || e.To > b.size {
			return nil, fmt.Errorf("%w: [%d,%d) in document of length %d", ErrOutOfRange, e.From, e.To, b.size)
		}
		if i > 0 && e.From < prevTo {
			return nil, fmt.Errorf("%w: [%d,%d) starts before %d", ErrOverlap, e.From, e.To, prevTo)
		}
		prevTo = e.To
		sorted[i].Insert = NormalizeNewlines(e.Insert)
	}

	// Apply back to front so earlier offsets stay valid.
	applied := make([]AppliedEdit, len(sorted))
	ok := make([]bool, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		a, changed := b.replaceRange(Range{Start: b.posAt(e.From), End: b.posAt(e.To)}, e.Insert)
		if changed {
			applied[i] = a
			ok[i] = true
		}
		b.reindex()
	}

	out := make(Changes, 0, len(sorted))
	delta := 0
	for i := range sorted {
		if !ok[i] {
			continue
		}
		a := applied[i]
		a.FromAfter = a.FromBefore + delta
		a.ToAfter = a.FromAfter + utf8.RuneCountInString(a.Insert)
		delta += utf8.RuneCountInString(a.Insert) - (a.ToBefore - a.FromBefore)
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

package buffer

import "strings"

// Buffer holds document text split into lines.
//
// A Buffer is mutable; the engine treats a Buffer as frozen once it has been
// published in a state and applies edits to a Clone.
type Buffer struct {
	lines  [][]rune
	starts []int
	size   int
}

// New creates a buffer for text. "\r\n" and "\r" are normalized to "\n".
func New(text string) *Buffer {
	b := &Buffer{lines: splitLines(NormalizeNewlines(text))}
	b.reindex()
	return b
}

// NormalizeNewlines rewrites "\r\n" and lone "\r" as "\n".
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Len returns the document length in runes, line breaks included.
func (b *Buffer) Len() int { return b.size }

// Lines returns the number of logical lines (at least 1).
func (b *Buffer) Lines() int { return len(b.lines) }

// Line returns the 1-based line n.
func (b *Buffer) Line(n int) (Line, bool) {
	if n < 1 || n > len(b.lines) {
		return Line{}, false
	}
	return b.lineForRow(n - 1), true
}

// LineAt returns the line containing offset off. Offsets are clamped into the
// document.
func (b *Buffer) LineAt(off int) Line {
	off = clampInt(off, 0, b.size)
	return b.lineForRow(b.rowAt(off))
}

// Slice returns the text in [from, to). Bounds are clamped and ordered.
func (b *Buffer) Slice(from, to int) string {
	if from > to {
		from, to = to, from
	}
	from = clampInt(from, 0, b.size)
	to = clampInt(to, 0, b.size)
	if from == to {
		return ""
	}
	return textForLinesRange(b.lines, Range{Start: b.posAt(from), End: b.posAt(to)})
}

// Clone returns an independent copy. Line storage is shared until edited;
// edits never modify a line slice in place.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		lines:  append([][]rune(nil), b.lines...),
		starts: append([]int(nil), b.starts...),
		size:   b.size,
	}
	return out
}

func (b *Buffer) lineForRow(row int) Line {
	from := b.starts[row]
	return Line{
		Number: row + 1,
		From:   from,
		To:     from + len(b.lines[row]),
		Text:   string(b.lines[row]),
	}
}

// rowAt finds the row containing off by binary search over line starts.
func (b *Buffer) rowAt(off int) int {
	lo, hi := 0, len(b.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.starts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (b *Buffer) posAt(off int) Pos {
	row := b.rowAt(off)
	return Pos{Row: row, Col: off - b.starts[row]}
}

func (b *Buffer) offsetAt(p Pos) int {
	return b.starts[p.Row] + p.Col
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func (b *Buffer) reindex() {
	if len(b.lines) == 0 {
		b.lines = [][]rune{nil}
	}
	b.starts = b.starts[:0]
	off := 0
	for i, line := range b.lines {
		if i > 0 {
			off++
		}
		b.starts = append(b.starts, off)
		off += len(line)
	}
	b.size = off
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}

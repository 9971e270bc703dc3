package buffer

import "github.com/iw2rmb/inkwell/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit MoveUnit
	Dir  MoveDir
}

// Move returns the offset reached by moving from off. The result is always a
// valid offset; moves past the document edges stop at the edge.
func (b *Buffer) Move(off int, m Move) int {
	off = clampInt(off, 0, b.size)
	p := b.posAt(off)
	var next Pos
	switch m.Unit {
	case MoveGrapheme:
		next = b.moveGrapheme(p, m.Dir)
	case MoveWord:
		next = b.moveWord(p, m.Dir)
	case MoveLine:
		next = b.moveLine(p, m.Dir)
	case MoveDoc:
		next = b.moveDoc(p, m.Dir)
	default:
		next = p
	}
	return b.offsetAt(b.clampPos(next))
}

func (b *Buffer) moveGrapheme(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirLeft:
		if row == 0 && col == 0 {
			return p
		}
		if col > 0 {
			bounds := grapheme.Boundaries(string(b.lines[row]))
			for i := len(bounds) - 1; i >= 0; i-- {
				if bounds[i] < col {
					return Pos{Row: row, Col: bounds[i]}
				}
			}
			return Pos{Row: row, Col: 0}
		}
		prevRow := row - 1
		return Pos{Row: prevRow, Col: len(b.lines[prevRow])}
	case DirRight:
		if row == lastRow && col == len(b.lines[lastRow]) {
			return p
		}
		if col < len(b.lines[row]) {
			for _, bound := range grapheme.Boundaries(string(b.lines[row])) {
				if bound > col {
					return Pos{Row: row, Col: bound}
				}
			}
			return Pos{Row: row, Col: len(b.lines[row])}
		}
		return Pos{Row: row + 1, Col: 0}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveWord(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	line := b.lines[row]

	switch dir {
	case DirLeft:
		if col == 0 && row > 0 {
			return Pos{Row: row - 1, Col: len(b.lines[row-1])}
		}
		return Pos{Row: row, Col: prevWordBoundary(line, col)}
	case DirRight:
		if col == len(line) && row < len(b.lines)-1 {
			return Pos{Row: row + 1, Col: 0}
		}
		return Pos{Row: row, Col: nextWordBoundary(line, col)}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveLine(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirHome:
		return Pos{Row: row, Col: 0}
	case DirEnd:
		return Pos{Row: row, Col: len(b.lines[row])}
	case DirUp:
		if row == 0 {
			return Pos{Row: 0, Col: 0}
		}
		nr := row - 1
		return Pos{Row: nr, Col: minInt(col, len(b.lines[nr]))}
	case DirDown:
		if row == lastRow {
			return Pos{Row: row, Col: len(b.lines[row])}
		}
		nr := row + 1
		return Pos{Row: nr, Col: minInt(col, len(b.lines[nr]))}
	default:
		return p
	}
}

func (b *Buffer) moveDoc(p Pos, dir MoveDir) Pos {
	lastRow := len(b.lines) - 1
	lastCol := len(b.lines[lastRow])

	switch dir {
	case DirHome, DirUp, DirLeft:
		return Pos{Row: 0, Col: 0}
	case DirEnd, DirDown, DirRight:
		return Pos{Row: lastRow, Col: lastCol}
	default:
		return p
	}
}

// Word boundary rules:
// - skip whitespace, then skip non-whitespace
// - newline is a hard boundary (so this operates on a single logical line)
func prevWordBoundary(line []rune, col int) int {
	clusters := grapheme.Split(string(line[:clampInt(col, 0, len(line))]))
	i := len(clusters)
	for i > 0 && grapheme.IsSpace(clusters[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(clusters[i-1]) {
		i--
	}
	n := 0
	for _, c := range clusters[:i] {
		n += len([]rune(c))
	}
	return n
}

func nextWordBoundary(line []rune, col int) int {
	col = clampInt(col, 0, len(line))
	clusters := grapheme.Split(string(line[col:]))
	i := 0
	for i < len(clusters) && grapheme.IsSpace(clusters[i]) {
		i++
	}
	for i < len(clusters) && !grapheme.IsSpace(clusters[i]) {
		i++
	}
	n := col
	for _, c := range clusters[:i] {
		n += len([]rune(c))
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

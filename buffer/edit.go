package buffer

import (
	"strings"
	"unicode/utf8"
)

func (b *Buffer) replaceRange(r Range, text string) (applied AppliedEdit, changed bool) {
	r = NormalizeRange(Range{Start: b.clampPos(r.Start), End: b.clampPos(r.End)})
	if r.IsEmpty() && text == "" {
		return AppliedEdit{}, false
	}

	deletedText := textForLinesRange(b.lines, r)
	if deletedText == text {
		return AppliedEdit{}, false
	}

	from := b.offsetAt(r.Start)
	to := b.offsetAt(r.End)

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col

	prefix := append([]rune(nil), b.lines[startRow][:startCol]...)
	suffix := append([]rune(nil), b.lines[endRow][endCol:]...)

	parts := strings.Split(text, "\n")
	ins := make([][]rune, 0, len(parts))
	for _, p := range parts {
		ins = append(ins, []rune(p))
	}

	repl := make([][]rune, 0, len(ins))
	if len(ins) == 1 {
		line := make([]rune, 0, len(prefix)+len(ins[0])+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins[0]...)
		line = append(line, suffix...)
		repl = append(repl, line)
	} else {
		first := make([]rune, 0, len(prefix)+len(ins[0]))
		first = append(first, prefix...)
		first = append(first, ins[0]...)
		repl = append(repl, first)

		for i := 1; i < len(ins)-1; i++ {
			repl = append(repl, ins[i])
		}

		lastPart := ins[len(ins)-1]
		last := make([]rune, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)
	}

	before := b.lines[:startRow]
	after := b.lines[endRow+1:]
	out := make([][]rune, 0, len(before)+len(repl)+len(after))
	out = append(out, before...)
	out = append(out, repl...)
	out = append(out, after...)

	b.lines = out
	insLen := utf8.RuneCountInString(text)
	return AppliedEdit{
		FromBefore: from,
		ToBefore:   to,
		FromAfter:  from,
		ToAfter:    from + insLen,
		Insert:     text,
		Deleted:    deletedText,
	}, true
}

func textForLinesRange(lines [][]rune, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}

	startRow := r.Start.Row
	endRow := r.End.Row
	startCol := r.Start.Col
	endCol := r.End.Col

	if startRow == endRow {
		return string(lines[startRow][startCol:endCol])
	}

	var sb strings.Builder
	for row := startRow; row <= endRow; row++ {
		if row > startRow {
			sb.WriteByte('\n')
		}
		partStart := 0
		partEnd := len(lines[row])
		if row == startRow {
			partStart = startCol
		}
		if row == endRow {
			partEnd = endCol
		}
		sb.WriteString(string(lines[row][partStart:partEnd]))
	}
	return sb.String()
}

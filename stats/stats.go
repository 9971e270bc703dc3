// Package stats derives document and selection metrics from editor updates.
package stats

import (
	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// Statistics is a snapshot of one editor state.
type Statistics struct {
	// Length is the document length in runes.
	Length    int
	LineCount int
	// Line is the line containing the start of the main selection range.
	Line      buffer.Line
	LineBreak string
	ReadOnly  bool
	TabSize   int

	Selection         engine.Selection
	SelectionAsSingle engine.SelectionRange
	// Ranges lists the selection ranges in document order.
	Ranges []engine.SelectionRange
	// SelectionCode is the text of the main range.
	SelectionCode string
	// Selections holds the text of every range, parallel to Ranges.
	Selections []string
	// SelectedText is true when any range is non-empty.
	SelectedText bool
	WordCount    int
}

// FromUpdate derives statistics from the state an update produced.
func FromUpdate(u engine.Update) Statistics {
	return FromState(u.State)
}

// FromState derives statistics from s. Every field is read from s alone.
func FromState(s *engine.State) Statistics {
	sel := s.Selection()
	main := sel.Main()
	ranges := sel.Ranges()

	st := Statistics{
		Length:            s.Len(),
		LineCount:         s.Lines(),
		Line:              s.LineAt(main.From()),
		LineBreak:         s.LineBreak(),
		ReadOnly:          s.ReadOnly(),
		TabSize:           s.TabSize(),
		Selection:         sel,
		SelectionAsSingle: sel.AsSingle().Main(),
		Ranges:            ranges,
		SelectionCode:     s.Slice(main.From(), main.To()),
		Selections:        make([]string, len(ranges)),
		WordCount:         CountWords(s.Text()),
	}
	for i, r := range ranges {
		st.Selections[i] = s.Slice(r.From(), r.To())
		if !r.Empty() {
			st.SelectedText = true
		}
	}
	return st
}

// CountWords counts maximal runs of word characters (letters, digits, '_').
func CountWords(text string) int {
	n := 0
	inWord := false
	for _, c := range grapheme.Split(text) {
		w := grapheme.IsWord(c)
		if w && !inWord {
			n++
		}
		inWord = w
	}
	return n
}

package search

import (
	"strings"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// TagSelectionMatch is the highlight tag for text matching the selection.
const TagSelectionMatch = "selectionMatch"

func isWordRune(r rune) bool { return grapheme.IsWord(string(r)) }

func wordAt(s *engine.State, pos int) (from, to int) {
	line := s.LineAt(pos)
	runes := []rune(line.Text)
	col := pos - line.From
	from, to = col, col
	for from > 0 && isWordRune(runes[from-1]) {
		from--
	}
	for to < len(runes) && isWordRune(runes[to]) {
		to++
	}
	return line.From + from, line.From + to
}

// isWordMatch reports whether [from, to) of runes is bounded by non-word
// characters on both sides.
func isWordMatch(runes []rune, from, to int) bool {
	if from > 0 && isWordRune(runes[from-1]) {
		return false
	}
	return to >= len(runes) || !isWordRune(runes[to])
}

func isWord(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

// SelectNextOccurrence selects the word at each cursor when nothing is
// selected. Otherwise it adds the next occurrence of the main selection's
// text as a new main range.
func SelectNextOccurrence(v *engine.View) bool {
	s := v.State()
	sel := s.Selection()
	ranges := sel.Ranges()
	empty := true
	for _, r := range ranges {
		if !r.Empty() {
			empty = false
			break
		}
	}
	if empty {
		for i, r := range ranges {
			from, to := wordAt(s, r.Head)
			ranges[i] = engine.Range(from, to)
		}
		next := engine.NewSelection(ranges, sel.MainIndex())
		return dispatch(v, engine.TransactionSpec{Selection: &next, UserEvent: "select.word"})
	}

	main := sel.Main()
	query := s.Slice(main.From(), main.To())
	matches := FindAll(s.Text(), query, true)
	last := ranges[len(ranges)-1].To()
	selected := func(m Match) bool {
		for _, r := range ranges {
			if r.From() == m.From && r.To() == m.To {
				return true
			}
		}
		return false
	}
	ordered := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.From >= last {
			ordered = append(ordered, m)
		}
	}
	for _, m := range matches {
		if m.From < last {
			ordered = append(ordered, m)
		}
	}
	for _, m := range ordered {
		if selected(m) {
			continue
		}
		next := sel.AddRange(engine.Range(m.From, m.To), true)
		return dispatch(v, engine.TransactionSpec{Selection: &next, UserEvent: "select.search.matches", ScrollIntoView: true})
	}
	return false
}

// SelectSelectionMatches selects every occurrence of the main selection's
// text.
func SelectSelectionMatches(v *engine.View) bool {
	s := v.State()
	main := s.Selection().Main()
	if main.Empty() {
		return false
	}
	matches := FindAll(s.Text(), s.Slice(main.From(), main.To()), true)
	ranges := make([]engine.SelectionRange, len(matches))
	mainIdx := 0
	for i, m := range matches {
		ranges[i] = engine.Range(m.From, m.To)
		if m.From == main.From() {
			mainIdx = i
		}
	}
	sel := engine.NewSelection(ranges, mainIdx)
	return dispatch(v, engine.TransactionSpec{Selection: &sel, UserEvent: "select.search.matches"})
}

// HighlightSelectionMatches tags text matching a single, single-line
// selection. A selected whole word only matches whole words.
func HighlightSelectionMatches() engine.Extension {
	return engine.Highlighters.Of(highlightMatches)
}

func highlightMatches(s *engine.State, line buffer.Line) []engine.Span {
	sel := s.Selection()
	if sel.Len() > 1 {
		return nil
	}
	main := sel.Main()
	if main.Empty() {
		return nil
	}
	query := s.Slice(main.From(), main.To())
	if strings.ContainsRune(query, '\n') || strings.TrimSpace(query) == "" {
		return nil
	}
	word := isWord(query)
	if word {
		from, to := wordAt(s, main.From())
		if from != main.From() || to != main.To() {
			word = false
		}
	}
	runes := []rune(line.Text)
	var out []engine.Span
	for _, m := range FindAll(line.Text, query, true) {
		if word && !isWordMatch(runes, m.From, m.To) {
			continue
		}
		out = append(out, engine.Span{From: m.From, To: m.To, Tag: TagSelectionMatch})
	}
	return out
}

// SearchKeymap binds the search commands.
var SearchKeymap = []engine.KeyBinding{
	engine.BindHelp(SelectNextOccurrence, "ctrl+d", "select next occurrence", "ctrl+d"),
	engine.BindHelp(SelectSelectionMatches, "ctrl+shift+l", "select all matches", "ctrl+shift+l"),
	engine.BindHelp(FindNext, "f3", "find next", "f3", "ctrl+g"),
	engine.BindHelp(FindPrevious, "shift+f3", "find previous", "shift+f3", "ctrl+shift+g"),
}

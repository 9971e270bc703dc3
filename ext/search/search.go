package search

import (
	"unicode"

	"github.com/iw2rmb/inkwell/engine"
)

// Query is the active search.
type Query struct {
	Search        string
	CaseSensitive bool
}

var setQueryEffect = engine.DefineEffect[Query]("search.setQuery")

var queryField = engine.DefineField(engine.FieldSpec[Query]{
	Update: func(q Query, tr *engine.Transaction) Query {
		for _, next := range setQueryEffect.In(tr) {
			q = next
		}
		return q
	},
})

// Search installs query state for SetQuery, FindNext and FindPrevious.
func Search() engine.Extension { return queryField }

// SetQuery replaces the active search.
func SetQuery(v *engine.View, q Query) bool {
	if _, ok := queryField.Get(v.State()); !ok {
		return false
	}
	return dispatch(v, engine.TransactionSpec{Effects: []engine.Effect{setQueryEffect.Of(q)}})
}

// GetQuery returns the active search.
func GetQuery(s *engine.State) Query { return queryField.Value(s) }

func dispatch(v *engine.View, spec engine.TransactionSpec) bool {
	if err := v.Dispatch(spec); err != nil {
		v.Logger().Debug("search dispatch failed", "error", err)
		return false
	}
	return true
}

// Match is a found occurrence as rune offsets.
type Match struct {
	From int
	To   int
}

// FindAll returns the non-overlapping occurrences of query in text.
func FindAll(text, query string, caseSensitive bool) []Match {
	q := []rune(query)
	if len(q) == 0 {
		return nil
	}
	t := []rune(text)
	fold := func(r rune) rune {
		if caseSensitive {
			return r
		}
		return unicode.ToLower(r)
	}
	var out []Match
	for i := 0; i+len(q) <= len(t); {
		j := 0
		for j < len(q) && fold(t[i+j]) == fold(q[j]) {
			j++
		}
		if j == len(q) {
			out = append(out, Match{From: i, To: i + len(q)})
			i += len(q)
			continue
		}
		i++
	}
	return out
}

func activeQuery(s *engine.State) Query {
	q := queryField.Value(s)
	if q.Search == "" {
		main := s.Selection().Main()
		q = Query{Search: s.Slice(main.From(), main.To()), CaseSensitive: true}
	}
	return q
}

func find(v *engine.View, forward bool) bool {
	s := v.State()
	q := activeQuery(s)
	matches := FindAll(s.Text(), q.Search, q.CaseSensitive)
	if len(matches) == 0 {
		return false
	}
	main := s.Selection().Main()
	var next Match
	if forward {
		next = matches[0]
		for _, m := range matches {
			if m.From >= main.To() {
				next = m
				break
			}
		}
	} else {
		next = matches[len(matches)-1]
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i].To <= main.From() {
				next = matches[i]
				break
			}
		}
	}
	sel := engine.SingleSelection(next.From, next.To)
	return dispatch(v, engine.TransactionSpec{Selection: &sel, UserEvent: "select.search", ScrollIntoView: true})
}

// FindNext selects the next occurrence of the query after the main
// selection, wrapping at the end. Without a query the selected text is
// searched for.
func FindNext(v *engine.View) bool { return find(v, true) }

// FindPrevious selects the previous occurrence, wrapping at the start.
func FindPrevious(v *engine.View) bool { return find(v, false) }

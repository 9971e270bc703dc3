package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/iw2rmb/inkwell/buffer"
)

// StateConfig configures NewState.
type StateConfig struct {
	Doc string
	// Selection defaults to a cursor at offset 0. It is clamped to the
	// document.
	Selection  *Selection
	Extensions []Extension
}

// State is an immutable editor snapshot: document, selection, resolved
// configuration, and field values.
type State struct {
	doc    *buffer.Buffer
	sel    Selection
	config *config
	fields map[fieldKey]any
}

// NewState builds a state. It fails with a *ConfigurationError when the
// extension list is malformed.
func NewState(cfg StateConfig) (*State, error) {
	c, err := resolve(cfg.Extensions)
	if err != nil {
		return nil, err
	}
	doc := buffer.New(cfg.Doc)
	sel := CursorSelection(0)
	if cfg.Selection != nil {
		sel = cfg.Selection.clamp(doc.Len())
	}
	s := &State{doc: doc, sel: sel, config: c, fields: make(map[fieldKey]any, len(c.fields))}
	s.sel = s.limitSelection(s.sel)
	for _, f := range c.fields {
		s.fields[f] = f.createAny(s)
	}
	return s, nil
}

func (s *State) limitSelection(sel Selection) Selection {
	if sel.Len() > 1 && !AllowMultipleSelections.Get(s) {
		return sel.AsSingle()
	}
	return sel
}

// Text returns the whole document.
func (s *State) Text() string { return s.doc.Text() }

// Len returns the document length in runes.
func (s *State) Len() int { return s.doc.Len() }

// Lines returns the number of lines; an empty document has one.
func (s *State) Lines() int { return s.doc.Lines() }

// Line returns the 1-based line n.
func (s *State) Line(n int) (buffer.Line, bool) { return s.doc.Line(n) }

// LineAt returns the line containing offset off.
func (s *State) LineAt(off int) buffer.Line { return s.doc.LineAt(off) }

// Slice returns the text in [from, to).
func (s *State) Slice(from, to int) string { return s.doc.Slice(from, to) }

// Move moves off by m over the document.
func (s *State) Move(off int, m buffer.Move) int { return s.doc.Move(off, m) }

func (s *State) Selection() Selection { return s.sel }

func (s *State) ReadOnly() bool { return ReadOnly.Get(s) }

func (s *State) TabSize() int { return TabSize.Get(s) }

func (s *State) LineBreak() string { return LineSeparator.Get(s) }

// Extensions returns the top-level fragment list the state was configured
// with.
func (s *State) Extensions() []Extension {
	if s.config == nil {
		return nil
	}
	return append([]Extension(nil), s.config.source...)
}

// ReplaceSelection builds a spec replacing every range with text and leaving
// cursors after the inserted text.
func (s *State) ReplaceSelection(text string) TransactionSpec {
	return s.ChangeByRange(func(r SelectionRange) RangeChange {
		return RangeChange{
			Changes: []Change{{From: r.From(), To: r.To(), Insert: text}},
			Range:   Cursor(r.From() + runeLen(text)),
		}
	})
}

// RangeChange is the result of a ChangeByRange callback. Changes use
// positions in the current document. Range is expressed as if only this
// range's changes were applied.
type RangeChange struct {
	Changes []Change
	Range   SelectionRange
}

// ChangeByRange runs fn for every selection range and combines the results
// into one spec.
func (s *State) ChangeByRange(fn func(r SelectionRange) RangeChange) TransactionSpec {
	sel := s.Selection()
	ranges := sel.Ranges()
	var changes []Change
	next := make([]SelectionRange, len(ranges))
	delta := 0
	for i, r := range ranges {
		rc := fn(r)
		changes = append(changes, rc.Changes...)
		next[i] = SelectionRange{Anchor: rc.Range.Anchor + delta, Head: rc.Range.Head + delta}
		for _, c := range rc.Changes {
			delta += runeLen(c.Insert) - (c.To - c.From)
		}
	}
	out := NewSelection(next, sel.MainIndex())
	return TransactionSpec{Changes: changes, Selection: &out, ScrollIntoView: true}
}

// Update builds a transaction from specs. Every spec's changes use positions
// in s; the last explicit selection wins and refers to the new document.
func (s *State) Update(specs ...TransactionSpec) (*Transaction, error) {
	spec := mergeSpecs(specs)

	doc := s.doc
	var changes buffer.Changes
	if len(spec.Changes) > 0 {
		next := s.doc.Clone()
		applied, err := next.Apply(spec.Changes...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidChange, err)
		}
		if !applied.Empty() {
			doc = next
			changes = applied
		}
	}

	cfg := s.config
	reconfigured := false
	for _, ef := range spec.Effects {
		exts, ok := reconfigureEffect.Value(ef)
		if !ok {
			continue
		}
		next, err := resolve(exts)
		if err != nil {
			return nil, err
		}
		cfg = next
		reconfigured = true
	}
	if reconfigured && SameExtensions(cfg.source, s.config.source) {
		cfg = s.config
		reconfigured = false
	}

	ns := &State{doc: doc, config: cfg, fields: make(map[fieldKey]any, len(cfg.fields))}
	if spec.Selection != nil {
		ns.sel = spec.Selection.clamp(doc.Len())
	} else {
		ns.sel = s.sel.Map(changes)
	}
	ns.sel = ns.limitSelection(ns.sel)

	tr := &Transaction{
		StartState:     s,
		State:          ns,
		Changes:        changes,
		Selection:      spec.Selection,
		Effects:        spec.Effects,
		UserEvent:      spec.UserEvent,
		ScrollIntoView: spec.ScrollIntoView,
		annotations:    spec.Annotations,
		reconfigured:   reconfigured,
	}
	for _, f := range cfg.fields {
		if prev, ok := s.fields[f]; ok {
			ns.fields[f] = f.updateAny(prev, tr)
		} else {
			ns.fields[f] = f.createAny(ns)
		}
	}
	return tr, nil
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

package engine

import (
	"strings"

	"github.com/iw2rmb/inkwell/buffer"
)

// Change replaces [From, To) of the current document with Insert.
type Change = buffer.Edit

// TransactionSpec describes a state update.
type TransactionSpec struct {
	Changes     []Change
	Selection   *Selection
	Effects     []Effect
	Annotations []Annotation
	// UserEvent names the user action, e.g. "input.type" or "delete.backward".
	UserEvent      string
	ScrollIntoView bool
}

// Transaction is a state update built by State.Update.
type Transaction struct {
	StartState *State
	State      *State
	Changes    buffer.Changes
	// Selection is the explicitly requested selection, or nil when the
	// selection was only mapped through the changes.
	Selection      *Selection
	Effects        []Effect
	UserEvent      string
	ScrollIntoView bool

	annotations  []Annotation
	reconfigured bool
}

func (tr *Transaction) DocChanged() bool { return !tr.Changes.Empty() }

// Reconfigured reports whether the transaction changed the fragment list.
func (tr *Transaction) Reconfigured() bool { return tr.reconfigured }

// IsUserEvent reports whether the transaction's user event is event or one
// of its dotted sub-events.
func (tr *Transaction) IsUserEvent(event string) bool {
	ue := tr.UserEvent
	return ue == event || strings.HasPrefix(ue, event+".")
}

func mergeSpecs(specs []TransactionSpec) TransactionSpec {
	if len(specs) == 1 {
		return specs[0]
	}
	var out TransactionSpec
	for _, s := range specs {
		out.Changes = append(out.Changes, s.Changes...)
		if s.Selection != nil {
			out.Selection = s.Selection
		}
		out.Effects = append(out.Effects, s.Effects...)
		out.Annotations = append(out.Annotations, s.Annotations...)
		if s.UserEvent != "" {
			out.UserEvent = s.UserEvent
		}
		out.ScrollIntoView = out.ScrollIntoView || s.ScrollIntoView
	}
	return out
}

// Update is delivered to plugins, panels, and update listeners after every
// applied transaction and every focus change.
type Update struct {
	View         *View
	State        *State
	StartState   *State
	Transactions []*Transaction

	DocChanged    bool
	SelectionSet  bool
	FocusChanged  bool
	ConfigChanged bool
}

// Changes returns the document changes carried by the update.
func (u Update) Changes() buffer.Changes {
	var out buffer.Changes
	for _, tr := range u.Transactions {
		out = append(out, tr.Changes...)
	}
	return out
}

// IsUserEvent reports whether any transaction in the update carries event.
func (u Update) IsUserEvent(event string) bool {
	for _, tr := range u.Transactions {
		if tr.IsUserEvent(event) {
			return true
		}
	}
	return false
}

package lint

import (
	"cmp"
	"slices"

	"github.com/iw2rmb/inkwell/engine"
)

// Severity ranks diagnostics.
type Severity int

const (
	Hint Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Hint:
		return "hint"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Diagnostic is a problem found in [From, To).
type Diagnostic struct {
	From     int
	To       int
	Severity Severity
	Message  string
	Source   string
}

type lintState struct {
	diagnostics []Diagnostic
	panel       bool
}

var (
	setDiagnosticsEffect = engine.DefineEffect[[]Diagnostic]("lint.setDiagnostics")
	togglePanelEffect    = engine.DefineEffect[bool]("lint.togglePanel")
)

var lintField = engine.DefineField(engine.FieldSpec[lintState]{
	Update: func(ls lintState, tr *engine.Transaction) lintState {
		if tr.DocChanged() && len(ls.diagnostics) > 0 {
			mapped := make([]Diagnostic, 0, len(ls.diagnostics))
			for _, d := range ls.diagnostics {
				d.From = tr.Changes.MapPos(d.From, 1)
				d.To = max(tr.Changes.MapPos(d.To, -1), d.From)
				mapped = append(mapped, d)
			}
			ls.diagnostics = mapped
		}
		for _, ef := range tr.Effects {
			if ds, ok := setDiagnosticsEffect.Value(ef); ok {
				ls.diagnostics = normalize(tr.State, ds)
			}
			if open, ok := togglePanelEffect.Value(ef); ok {
				ls.panel = open
			}
		}
		return ls
	},
	Provide: func(*engine.Field[lintState]) engine.Extension {
		return engine.Group(
			engine.ShowPanel(panelSpec),
			engine.Highlighters.Of(highlightDiagnostics),
			engine.BaseTheme(baseTheme),
		)
	},
})

func normalize(s *engine.State, ds []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(ds))
	for _, d := range ds {
		d.From = min(max(d.From, 0), s.Len())
		d.To = min(max(d.To, d.From), s.Len())
		out = append(out, d)
	}
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
	return out
}

// SetDiagnostics returns a transaction spec replacing the diagnostics of s.
func SetDiagnostics(ds []Diagnostic) engine.TransactionSpec {
	return engine.TransactionSpec{Effects: []engine.Effect{setDiagnosticsEffect.Of(append([]Diagnostic(nil), ds...))}}
}

// Diagnostics returns the current diagnostics in document order.
func Diagnostics(s *engine.State) []Diagnostic {
	return append([]Diagnostic(nil), lintField.Value(s).diagnostics...)
}

// Lint installs diagnostic state: highlights, the panel, and the commands'
// state. SetDiagnostics needs it in the configuration.
func Lint() engine.Extension { return lintField }

func dispatch(v *engine.View, spec engine.TransactionSpec) bool {
	if err := v.Dispatch(spec); err != nil {
		v.Logger().Debug("lint dispatch failed", "error", err)
		return false
	}
	return true
}

// NextDiagnostic selects the first diagnostic after the cursor, wrapping
// around.
func NextDiagnostic(v *engine.View) bool {
	s := v.State()
	ds := lintField.Value(s).diagnostics
	if len(ds) == 0 {
		return false
	}
	main := s.Selection().Main()
	next := ds[0]
	for _, d := range ds {
		if d.From > main.From() || (d.From == main.From() && d.To > main.To()) {
			next = d
			break
		}
	}
	sel := engine.SingleSelection(next.From, next.To)
	return dispatch(v, engine.TransactionSpec{Selection: &sel, UserEvent: "select", ScrollIntoView: true})
}

// ToggleLintPanel shows or hides the diagnostics panel.
func ToggleLintPanel(v *engine.View) bool {
	ls, ok := lintField.Get(v.State())
	if !ok {
		return false
	}
	return dispatch(v, engine.TransactionSpec{Effects: []engine.Effect{togglePanelEffect.Of(!ls.panel)}})
}

// LintKeymap binds the lint commands.
var LintKeymap = []engine.KeyBinding{
	engine.BindHelp(ToggleLintPanel, "ctrl+shift+m", "diagnostics panel", "ctrl+shift+m"),
	engine.BindHelp(NextDiagnostic, "f8", "next diagnostic", "f8"),
}

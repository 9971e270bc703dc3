package autocomplete

import (
	"strings"

	"github.com/iw2rmb/inkwell/engine"
)

// Config configures Autocompletion.
type Config struct {
	// Override replaces the sources contributed through Sources.
	Override []Source
	// ActivateOnTyping starts a request whenever the user types.
	ActivateOnTyping bool
	// MaxRendered caps the rows shown at once. Defaults to 8.
	MaxRendered int
	// NoKeymap leaves CompletionKeymap out.
	NoKeymap bool
}

const defaultMaxRendered = 8

var configFacet = engine.DefineFacet("autocomplete.config", engine.Last(Config{}))

func sourcesOf(s *engine.State) []Source {
	if cfg := configFacet.Get(s); len(cfg.Override) > 0 {
		return cfg.Override
	}
	return Sources.Get(s)
}

type status uint8

const (
	statusIdle status = iota
	statusPending
	statusActive
)

// completionState is the field value. seq identifies the current request;
// results carrying another seq are stale and dropped.
type completionState struct {
	status   status
	explicit bool
	seq      uint64
	from     int
	filter   bool
	all      []Completion
	options  []Completion
	selected int
}

type response struct {
	seq    uint64
	result *Result
}

var (
	startEffect  = engine.DefineEffect[bool]("autocomplete.start")
	closeEffect  = engine.DefineEffect[struct{}]("autocomplete.close")
	resultEffect = engine.DefineEffect[response]("autocomplete.result")
	selectEffect = engine.DefineEffect[int]("autocomplete.select")
)

var completionField = engine.DefineField(engine.FieldSpec[completionState]{
	Create: func(*engine.State) completionState { return completionState{} },
	Update: updateCompletion,
	Provide: func(f *engine.Field[completionState]) engine.Extension {
		return engine.ShowTooltip(func(s *engine.State) *engine.Tooltip {
			return tooltipFor(s, f.Value(s))
		})
	},
})

func head(s *engine.State) int { return s.Selection().Main().Head }

func updateCompletion(cs completionState, tr *engine.Transaction) completionState {
	s := tr.State
	switch {
	case tr.DocChanged():
		typing := tr.IsUserEvent("input.type") || tr.IsUserEvent("delete")
		switch {
		case cs.status == statusActive && typing:
			cs.from = tr.Changes.MapPos(cs.from, -1)
			if head(s) < cs.from || s.LineAt(head(s)).Number != s.LineAt(cs.from).Number {
				cs = completionState{seq: cs.seq}
				break
			}
			cs = cs.refilter(s)
		case cs.status == statusPending && typing:
			// Supersede the in-flight request.
			cs.seq++
		case cs.status == statusIdle && configFacet.Get(s).ActivateOnTyping && tr.IsUserEvent("input.type"):
			cs = completionState{status: statusPending, seq: cs.seq + 1}
		default:
			cs = completionState{seq: cs.seq}
		}
	case tr.Selection != nil && cs.status != statusIdle:
		cs = completionState{seq: cs.seq}
	}

	for _, ef := range tr.Effects {
		if explicit, ok := startEffect.Value(ef); ok {
			cs = completionState{status: statusPending, explicit: explicit, seq: cs.seq + 1}
		}
		if closeEffect.Is(ef) {
			cs = completionState{seq: cs.seq}
		}
		if r, ok := resultEffect.Value(ef); ok && cs.status == statusPending && r.seq == cs.seq {
			cs = cs.withResult(s, r.result)
		}
		if i, ok := selectEffect.Value(ef); ok && cs.status == statusActive {
			cs.selected = min(max(i, 0), len(cs.options)-1)
		}
	}
	return cs
}

func (cs completionState) withResult(s *engine.State, r *Result) completionState {
	if r == nil || len(r.Options) == 0 || r.From > head(s) {
		return completionState{seq: cs.seq}
	}
	cs.status = statusActive
	cs.from = r.From
	cs.filter = r.Filter
	cs.all = r.Options
	return cs.refilter(s)
}

func (cs completionState) refilter(s *engine.State) completionState {
	if !cs.filter {
		cs.options = cs.all
	} else {
		typed := strings.ToLower(s.Slice(cs.from, head(s)))
		cs.options = nil
		for _, c := range cs.all {
			if strings.Contains(strings.ToLower(c.Label), typed) {
				cs.options = append(cs.options, c)
			}
		}
	}
	if len(cs.options) == 0 {
		return completionState{seq: cs.seq}
	}
	cs.selected = min(cs.selected, len(cs.options)-1)
	return cs
}

// Status reports "active" while suggestions are shown, "pending" while a
// request is in flight, and "" otherwise.
func Status(s *engine.State) string {
	switch completionField.Value(s).status {
	case statusActive:
		return "active"
	case statusPending:
		return "pending"
	default:
		return ""
	}
}

// Current returns the suggestions on display.
func Current(s *engine.State) []Completion {
	cs := completionField.Value(s)
	if cs.status != statusActive {
		return nil
	}
	return append([]Completion(nil), cs.options...)
}

// Selected returns the highlighted suggestion.
func Selected(s *engine.State) (Completion, bool) {
	cs := completionField.Value(s)
	if cs.status != statusActive {
		return Completion{}, false
	}
	return cs.options[cs.selected], true
}

// Autocompletion shows suggestions from the configured sources in a tooltip
// below the completed text.
func Autocompletion(cfg Config) engine.Extension {
	exts := []engine.Extension{
		configFacet.Of(cfg),
		completionField,
		requestPlugin,
		engine.BaseTheme(baseTheme),
	}
	if !cfg.NoKeymap {
		exts = append(exts, engine.Prec(engine.PrecHighest, engine.Keymap(CompletionKeymap...)))
	}
	return engine.Group(exts...)
}

package gutter

import (
	"slices"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

type breakpointToggle struct {
	pos int
	on  bool
}

var breakpointEffect = engine.DefineEffect[breakpointToggle]("breakpoint")

// Breakpoints are stored as sorted offsets and follow document changes.
var breakpointField = engine.DefineField(engine.FieldSpec[[]int]{
	Update: func(set []int, tr *engine.Transaction) []int {
		if tr.DocChanged() && len(set) > 0 {
			mapped := make([]int, 0, len(set))
			for _, pos := range set {
				mapped = append(mapped, tr.Changes.MapPos(pos, -1))
			}
			set = dedupe(tr.State, mapped)
		}
		for _, t := range breakpointEffect.In(tr) {
			pos := tr.State.LineAt(t.pos).From
			if t.on {
				set = dedupe(tr.State, append(slices.Clone(set), pos))
			} else {
				set = slices.DeleteFunc(slices.Clone(set), func(p int) bool {
					return tr.State.LineAt(p).Number == tr.State.LineAt(pos).Number
				})
			}
		}
		return set
	},
})

// dedupe keeps one breakpoint per line.
func dedupe(s *engine.State, set []int) []int {
	slices.Sort(set)
	out := set[:0]
	last := 0
	for _, pos := range set {
		n := s.LineAt(pos).Number
		if n == last {
			continue
		}
		last = n
		out = append(out, pos)
	}
	return out
}

func hasBreakpoint(s *engine.State, line buffer.Line) bool {
	for _, pos := range breakpointField.Value(s) {
		if pos >= line.From && pos <= line.To {
			return true
		}
	}
	return false
}

// Breakpoints returns the line numbers carrying a breakpoint.
func Breakpoints(s *engine.State) []int {
	set := breakpointField.Value(s)
	out := make([]int, len(set))
	for i, pos := range set {
		out[i] = s.LineAt(pos).Number
	}
	return out
}

// ToggleBreakpoint flips the breakpoint of the line holding pos.
func ToggleBreakpoint(v *engine.View, pos int) bool {
	s := v.State()
	if _, ok := breakpointField.Get(s); !ok {
		return false
	}
	on := !hasBreakpoint(s, s.LineAt(pos))
	err := v.Dispatch(engine.TransactionSpec{Effects: []engine.Effect{breakpointEffect.Of(breakpointToggle{pos: pos, on: on})}})
	if err != nil {
		v.Logger().Debug("toggle breakpoint", "error", err)
		return false
	}
	return true
}

// ToggleBreakpointAtCursor flips the breakpoint of the main cursor's line.
func ToggleBreakpointAtCursor(v *engine.View) bool {
	return ToggleBreakpoint(v, v.State().Selection().Main().Head)
}

// BreakpointKeymap toggles the cursor line's breakpoint with f9.
var BreakpointKeymap = []engine.KeyBinding{
	engine.BindHelp(ToggleBreakpointAtCursor, "f9", "toggle breakpoint", "f9"),
}

var breakpoints = &engine.Gutter{
	Name: "breakpoints",
	Marker: func(v *engine.View, line buffer.Line) string {
		if hasBreakpoint(v.State(), line) {
			return "💔"
		}
		return ""
	},
	MinWidth: func(*engine.State) int { return 2 },
	Click: func(v *engine.View, line buffer.Line) bool {
		return ToggleBreakpoint(v, line.From)
	},
	Style: StyleBreakpoints,
}

// BreakpointGutter adds a gutter of breakpoint markers. Clicking a cell or
// pressing f9 toggles the line's breakpoint.
func BreakpointGutter() engine.Extension {
	return engine.Group(
		breakpointField,
		engine.AddGutter(breakpoints),
		engine.Keymap(BreakpointKeymap...),
		engine.BaseTheme(breakpointTheme),
	)
}

package engine

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/buffer"
)

// ViewConfig configures NewView.
type ViewConfig struct {
	// State defaults to an empty document with no extensions.
	State  *State
	Parent *Container
	// Scheduler defaults to NopScheduler.
	Scheduler Scheduler
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
	// Renderer, when set, renders every theme style. It defaults to the
	// lipgloss default renderer, which detects the terminal on stdout.
	Renderer *lipgloss.Renderer
}

// View is a live editing session bound to a container.
type View struct {
	state  *State
	parent *Container
	sched  Scheduler
	log    *slog.Logger
	rend   *lipgloss.Renderer

	focused   bool
	destroyed bool

	plugins []pluginInstance
	panels  []panelInstance

	updating bool
	draining bool
	queue    []queuedDispatch

	scrollTop int
	follow    bool
	layout    layout
}

type queuedDispatch struct {
	specs []TransactionSpec
	tr    *Transaction
	focus *bool
}

// NewView creates a view and renders it into cfg.Parent.
func NewView(cfg ViewConfig) (*View, error) {
	if cfg.Parent == nil {
		return nil, ErrNoParent
	}
	st := cfg.State
	if st == nil {
		var err error
		if st, err = NewState(StateConfig{}); err != nil {
			return nil, err
		}
	}
	v := &View{
		state:  st,
		parent: cfg.Parent,
		sched:  cfg.Scheduler,
		log:    cfg.Logger,
		rend:   cfg.Renderer,
		follow: true,
	}
	if v.sched == nil {
		v.sched = NopScheduler{}
	}
	if v.log == nil {
		v.log = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Parent.attach(v); err != nil {
		return nil, err
	}

	v.updating = true
	v.syncPlugins()
	v.syncPanels()
	v.updating = false
	v.render()
	v.drain()
	return v, nil
}

func (v *View) State() *State { return v.state }

func (v *View) Container() *Container { return v.parent }

func (v *View) Scheduler() Scheduler { return v.sched }

func (v *View) Logger() *slog.Logger { return v.log }

func (v *View) HasFocus() bool { return v.focused }

func (v *View) Destroyed() bool { return v.destroyed }

func (v *View) staleErr() error {
	return &StaleDispatchError{ContainerID: v.parent.ID()}
}

// Dispatch builds a transaction from specs against the current state and
// applies it. Dispatches made while an update is being delivered are queued
// and applied in order once delivery finishes.
func (v *View) Dispatch(specs ...TransactionSpec) error {
	if v.destroyed {
		return v.staleErr()
	}
	if v.updating {
		v.queue = append(v.queue, queuedDispatch{specs: specs})
		return nil
	}
	tr, err := v.state.Update(specs...)
	if err != nil {
		return err
	}
	v.apply(tr)
	return nil
}

// DispatchTransaction applies a transaction built from the current state.
func (v *View) DispatchTransaction(tr *Transaction) error {
	if v.destroyed {
		return v.staleErr()
	}
	if tr == nil {
		return nil
	}
	if v.updating {
		v.queue = append(v.queue, queuedDispatch{tr: tr})
		return nil
	}
	if tr.StartState != v.state {
		return ErrStaleTransaction
	}
	v.apply(tr)
	return nil
}

func (v *View) apply(tr *Transaction) {
	prev := v.state
	v.state = tr.State
	u := Update{
		View:          v,
		State:         tr.State,
		StartState:    prev,
		Transactions:  []*Transaction{tr},
		DocChanged:    tr.DocChanged(),
		SelectionSet:  tr.Selection != nil,
		ConfigChanged: tr.Reconfigured(),
	}
	if tr.ScrollIntoView || u.DocChanged || u.SelectionSet {
		v.follow = true
	}
	v.notify(u)
}

func (v *View) notify(u Update) {
	v.updating = true
	if u.ConfigChanged {
		v.syncPlugins()
		v.syncPanels()
	}
	for _, p := range v.plugins {
		if v.destroyed {
			break
		}
		p.value.Update(u)
	}
	for _, p := range v.panels {
		if v.destroyed {
			break
		}
		p.panel.Update(u)
	}
	for _, l := range UpdateListener.Get(u.State) {
		if v.destroyed {
			break
		}
		l(u)
	}
	v.updating = false
	if v.destroyed {
		return
	}
	v.render()
	v.drain()
}

func (v *View) drain() {
	if v.draining {
		return
	}
	v.draining = true
	defer func() { v.draining = false }()
	for len(v.queue) > 0 && !v.destroyed {
		q := v.queue[0]
		v.queue = v.queue[1:]
		var err error
		switch {
		case q.focus != nil:
			v.setFocus(*q.focus)
		case q.tr != nil:
			err = v.DispatchTransaction(q.tr)
		default:
			err = v.Dispatch(q.specs...)
		}
		if err != nil {
			v.log.Warn("dropped queued dispatch", "container", v.parent.ID(), "error", err)
		}
	}
}

func (v *View) Focus() { v.setFocus(true) }

func (v *View) Blur() { v.setFocus(false) }

func (v *View) setFocus(focused bool) {
	if v.destroyed || v.focused == focused {
		return
	}
	if v.updating {
		v.queue = append(v.queue, queuedDispatch{focus: &focused})
		return
	}
	v.focused = focused
	v.notify(Update{View: v, State: v.state, StartState: v.state, FocusChanged: true})
}

// Destroy tears the view down and releases its container. It is idempotent.
func (v *View) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.queue = nil
	for _, p := range v.plugins {
		p.value.Destroy()
	}
	for _, p := range v.panels {
		if d, ok := p.panel.(panelDestroyer); ok {
			d.Destroy()
		}
	}
	v.plugins, v.panels = nil, nil
	v.parent.detach(v)
	v.log.Debug("view destroyed", "container", v.parent.ID())
}

func (v *View) syncPlugins() {
	want := v.state.config.plugins
	old := make(map[*Plugin]PluginValue, len(v.plugins))
	for _, p := range v.plugins {
		old[p.plugin] = p.value
	}
	next := make([]pluginInstance, 0, len(want))
	for _, p := range want {
		if val, ok := old[p]; ok {
			next = append(next, pluginInstance{plugin: p, value: val})
			delete(old, p)
			continue
		}
		var val PluginValue = PluginFuncs{}
		if p.create != nil {
			val = p.create(v)
		}
		next = append(next, pluginInstance{plugin: p, value: val})
	}
	for _, p := range v.plugins {
		if val, ok := old[p.plugin]; ok {
			val.Destroy()
		}
	}
	v.plugins = next
}

func (v *View) syncPanels() {
	want := Panels.Get(v.state)
	old := make(map[*PanelSpec]Panel, len(v.panels))
	for _, p := range v.panels {
		old[p.spec] = p.panel
	}
	next := make([]panelInstance, 0, len(want))
	for _, spec := range want {
		if spec == nil || spec.Create == nil {
			continue
		}
		if p, ok := old[spec]; ok {
			next = append(next, panelInstance{spec: spec, panel: p})
			delete(old, spec)
			continue
		}
		next = append(next, panelInstance{spec: spec, panel: spec.Create(v)})
	}
	for _, p := range v.panels {
		if pn, ok := old[p.spec]; ok {
			if d, ok := pn.(panelDestroyer); ok {
				d.Destroy()
			}
		}
	}
	v.panels = next
}

// HandleKey runs the first binding matching k. It reports whether a command
// handled the key. Non-editable views ignore keys.
func (v *View) HandleKey(k string) bool {
	if v.destroyed || !Editable.Get(v.state) {
		return false
	}
	for _, b := range Bindings(v.state) {
		if b.matches(k) && b.Run(v) {
			return true
		}
	}
	return false
}

// InsertText handles typed input. Input handlers see the main range first;
// otherwise every range is replaced with text.
func (v *View) InsertText(text string) bool {
	if v.destroyed || text == "" || !Editable.Get(v.state) || v.state.ReadOnly() {
		return false
	}
	main := v.state.Selection().Main()
	for _, h := range InputHandlers.Get(v.state) {
		if h(v, main.From(), main.To(), text) {
			return true
		}
	}
	spec := v.state.ReplaceSelection(text)
	spec.UserEvent = "input.type"
	if err := v.Dispatch(spec); err != nil {
		v.log.Debug("insert text", "error", err)
		return false
	}
	return true
}

// SetCursor places a single cursor at off.
func (v *View) SetCursor(off int, userEvent string) error {
	sel := CursorSelection(off)
	return v.Dispatch(TransactionSpec{Selection: &sel, UserEvent: userEvent, ScrollIntoView: true})
}

// Scroll moves the viewport by delta visible lines.
func (v *View) Scroll(delta int) {
	if v.destroyed {
		return
	}
	v.scrollTop = max(v.scrollTop+delta, 0)
	v.follow = false
	v.render()
}

// LineAtRow returns the line rendered at content row y, counting panels.
func (v *View) LineAtRow(y int) (buffer.Line, bool) {
	y -= v.layout.top
	if y < 0 || y >= len(v.layout.rows) || v.layout.rows[y] == 0 {
		return buffer.Line{}, false
	}
	return v.state.Line(v.layout.rows[y])
}

package binding

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/stats"
)

// Core owns one editor view across renders.
type Core struct {
	log      *slog.Logger
	sched    engine.Scheduler
	obs      Observer
	rend     *lipgloss.Renderer
	composer *Composer

	view      *engine.View
	container *engine.Container

	props      Props
	applied    facets
	lastValue  string
	autoFocus  bool
	isEditable bool
}

// Option configures a Core.
type Option func(*Core)

// WithLogger sets the logger passed to the view and used by the core.
func WithLogger(l *slog.Logger) Option {
	return func(c *Core) {
		if l != nil {
			c.log = l
		}
	}
}

// WithScheduler sets the scheduler used for deferred extension work.
func WithScheduler(s engine.Scheduler) Option {
	return func(c *Core) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithObserver reports lifecycle events to o.
func WithObserver(o Observer) Option {
	return func(c *Core) {
		if o != nil {
			c.obs = o
		}
	}
}

// WithRenderer renders the view's theme styles through r instead of the
// lipgloss default renderer.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(c *Core) { c.rend = r }
}

func New(opts ...Option) *Core {
	c := &Core{
		log:   slog.New(slog.DiscardHandler),
		sched: engine.NopScheduler{},
		obs:   nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.composer = NewComposer(
		engine.UpdateListener.Of(c.handleCore),
		engine.UpdateListener.Of(c.handleHook),
	)
	return c
}

// View returns the live view, or nil.
func (c *Core) View() *engine.View { return c.view }

func (c *Core) Mounted() bool { return c.view != nil }

func (c *Core) containerID() string {
	if c.container == nil {
		return ""
	}
	return c.container.ID()
}

// Mount creates the view in container. Mounting again on the same container
// returns the live view; mounting on another container replaces it.
func (c *Core) Mount(container *engine.Container, p Props) (*engine.View, error) {
	if container == nil {
		err := &MountError{Err: ErrNoContainer}
		c.obs.Failed("mount", err)
		return nil, err
	}
	if c.view != nil {
		if c.container == container {
			return c.view, nil
		}
		c.Unmount()
	}

	fail := func(err error) (*engine.View, error) {
		err = &MountError{Container: container.ID(), Err: err}
		c.log.Error("mount failed", "container", container.ID(), "error", err)
		c.obs.Failed("mount", err)
		return nil, err
	}
	exts, err := c.composer.Compose(p)
	if err != nil {
		return fail(err)
	}
	st, err := engine.NewState(engine.StateConfig{Doc: p.Value, Selection: p.Selection, Extensions: exts})
	if err != nil {
		return fail(err)
	}
	c.props = p
	v, err := engine.NewView(engine.ViewConfig{
		State:     st,
		Parent:    container,
		Scheduler: c.sched,
		Logger:    c.log,
		Renderer:  c.rend,
	})
	if err != nil {
		return fail(err)
	}

	c.view, c.container = v, container
	c.applied = facetsOf(p)
	c.lastValue = p.Value
	c.autoFocus = p.AutoFocus
	c.isEditable = p.editable()
	c.log.Debug("mounted", "container", container.ID())
	c.obs.Mounted(container.ID())

	if p.OnCreateEditor != nil {
		p.OnCreateEditor(v, v.State())
	}
	if p.AutoFocus && c.view == v {
		v.Focus()
	}
	return v, nil
}

// Reconfigure dispatches one reconfiguration carrying the fragments composed
// from p. It does nothing when no view is mounted.
func (c *Core) Reconfigure(p Props) error {
	if c.view == nil {
		return nil
	}
	c.props = p
	exts, err := c.composer.Compose(p)
	if err != nil {
		c.obs.Failed("reconfigure", err)
		return fmt.Errorf("binding: reconfigure: %w", err)
	}
	if err := c.view.Dispatch(engine.TransactionSpec{Effects: []engine.Effect{engine.Reconfigure(exts...)}}); err != nil {
		c.obs.Failed("reconfigure", err)
		return fmt.Errorf("binding: reconfigure: %w", err)
	}
	c.applied = facetsOf(p)
	c.log.Debug("reconfigured", "container", c.containerID(), "fragments", len(exts))
	c.obs.Reconfigured(c.containerID())
	return nil
}

// SyncControlledValue replaces the whole document with desired when it
// differs from the live text. The current selection is kept, clamped to the
// new document.
func (c *Core) SyncControlledValue(desired string) error {
	if c.view == nil {
		return nil
	}
	desired = buffer.NormalizeNewlines(desired)
	st := c.view.State()
	if st.Text() == desired {
		return nil
	}
	sel := st.Selection()
	err := c.view.Dispatch(engine.TransactionSpec{
		Changes:   []engine.Change{{From: 0, To: st.Len(), Insert: desired}},
		Selection: &sel,
		UserEvent: "set.value",
	})
	if err != nil {
		c.obs.Failed("sync", err)
		return fmt.Errorf("binding: sync value: %w", err)
	}
	c.obs.ValueSynced(c.containerID())
	return nil
}

// Unmount destroys the view. Callbacks stop before the view is torn down.
func (c *Core) Unmount() {
	if c.view == nil {
		return
	}
	v, id := c.view, c.containerID()
	c.view, c.container = nil, nil
	v.Destroy()
	c.log.Debug("unmounted", "container", id)
	c.obs.Unmounted(id)
}

// Render reconciles the live view with p. A nil container unmounts; a new
// container remounts. Otherwise only changed facets are reconfigured and the
// document is synced only when p.Value changed since the last render.
func (c *Core) Render(container *engine.Container, p Props) (*engine.View, error) {
	if container == nil {
		c.Unmount()
		c.props = p
		return nil, nil
	}
	if c.view != nil && c.container != container {
		c.Unmount()
	}
	if c.view == nil {
		return c.Mount(container, p)
	}

	c.props = p
	var errs []error
	if !c.applied.equal(facetsOf(p)) {
		if err := c.Reconfigure(p); err != nil {
			errs = append(errs, err)
		}
	}
	if p.Value != c.lastValue {
		c.lastValue = p.Value
		if err := c.SyncControlledValue(p.Value); err != nil {
			errs = append(errs, err)
		}
	}
	if c.view != nil && p.AutoFocus && (!c.autoFocus || (p.editable() && !c.isEditable)) {
		c.view.Focus()
	}
	c.autoFocus = p.AutoFocus
	c.isEditable = p.editable()
	return c.view, errors.Join(errs...)
}

// HandleUpdate routes an update from the live view to the props' callbacks.
// Updates from any other view, including one already unmounted, are ignored.
func (c *Core) HandleUpdate(u engine.Update) {
	c.handleCore(u)
	c.handleHook(u)
}

func (c *Core) handleCore(u engine.Update) {
	if c.view == nil || u.View != c.view {
		return
	}
	c.obs.Updated(c.containerID(), u.DocChanged)
	if u.DocChanged && c.props.OnChange != nil {
		c.props.OnChange(u.State.Text(), u)
	}
	if c.props.OnStatistics != nil {
		c.props.OnStatistics(stats.FromUpdate(u))
	}
}

func (c *Core) handleHook(u engine.Update) {
	if c.view == nil || u.View != c.view {
		return
	}
	if c.props.OnUpdate != nil {
		c.props.OnUpdate(u)
	}
}

package editor

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/binding"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/stats"
)

// session is the part of a Model shared by its copies.
type session struct {
	core      *binding.Core
	container *engine.Container
	sched     *scheduler
	log       *slog.Logger

	pending []tea.Msg
	err     error
}

// Model is a Bubble Tea component rendering one editor view.
type Model struct {
	cfg   Config
	s     *session
	props binding.Props

	focused  bool
	viewport viewport.Model

	mouseDragging bool
	mouseAnchor   int
}

func defaultKeyMap(km KeyMap) KeyMap {
	if len(km.Copy.Keys())+len(km.Cut.Keys())+len(km.Paste.Keys()) == 0 {
		return DefaultKeyMap()
	}
	return km
}

// New mounts a view configured by props. The returned Model is focused.
func New(cfg Config, props binding.Props) (Model, error) {
	cfg.KeyMap = defaultKeyMap(cfg.KeyMap)
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &session{
		container: engine.NewContainer(cfg.ContainerID),
		sched:     newScheduler(),
		log:       log,
	}
	s.core = binding.New(
		binding.WithLogger(log),
		binding.WithScheduler(s.sched),
		binding.WithObserver(cfg.Observer),
	)
	m := Model{
		cfg:      cfg,
		s:        s,
		props:    props,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	if _, err := s.core.Mount(s.container, s.wrap(props)); err != nil {
		return Model{}, err
	}
	m.rebuildContent()
	return m, nil
}

// wrap chains a ChangeMsg emitter after the host's OnChange.
func (s *session) wrap(p binding.Props) binding.Props {
	onChange := p.OnChange
	id := s.container.ID()
	p.OnChange = func(text string, u engine.Update) {
		if onChange != nil {
			onChange(text, u)
		}
		s.pending = append(s.pending, changeMsg(id, u))
	}
	return p
}

// Init returns the work scheduled while mounting.
func (m Model) Init() tea.Cmd { return m.commands() }

// SetProps re-renders the editor with p. Only what changed since the last
// call is applied: fragments are reconfigured when they differ and the
// document is replaced only when p.Value changed.
func (m Model) SetProps(p binding.Props) (Model, tea.Cmd) {
	m.props = p
	_, err := m.s.core.Render(m.s.container, m.s.wrap(p))
	m.s.err = err
	if err != nil {
		m.s.log.Warn("render props", "container", m.ContainerID(), "error", err)
	}
	m.rebuildContent()
	return m, m.commands()
}

// Props returns the props of the last render.
func (m Model) Props() binding.Props { return m.props }

func (m Model) SetSize(width, height int) Model {
	width, height = max(width, 0), max(height, 0)
	m.viewport.Width = width
	m.viewport.Height = height
	m.s.container.Resize(width, height)
	m.rebuildContent()
	return m
}

func (m Model) Focus() Model {
	m.focused = true
	if v := m.s.core.View(); v != nil {
		v.Focus()
	}
	m.rebuildContent()
	return m
}

func (m Model) Blur() Model {
	m.focused = false
	if v := m.s.core.View(); v != nil {
		v.Blur()
	}
	m.rebuildContent()
	return m
}

func (m Model) Focused() bool { return m.focused }

// Engine returns the mounted view, or nil after Close.
func (m Model) Engine() *engine.View { return m.s.core.View() }

// Text returns the live document.
func (m Model) Text() string {
	if v := m.s.core.View(); v != nil {
		return v.State().Text()
	}
	return ""
}

// Statistics describes the live state.
func (m Model) Statistics() stats.Statistics {
	if v := m.s.core.View(); v != nil {
		return stats.FromState(v.State())
	}
	return stats.Statistics{}
}

// Err returns the error of the last SetProps, if any.
func (m Model) Err() error { return m.s.err }

func (m Model) ContainerID() string { return m.s.container.ID() }

// Close destroys the view and cancels its pending work. Messages from tasks
// that were in flight are ignored afterwards.
func (m Model) Close() Model {
	m.s.sched.stop()
	m.s.core.Unmount()
	m.s.pending = nil
	m.rebuildContent()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case taskMsg:
		if msg.sched != m.s.sched {
			return m, nil
		}
		if apply := m.s.sched.finish(msg); apply != nil && m.s.core.Mounted() {
			apply()
		}
	case tea.FocusMsg:
		m = m.Focus()
	case tea.BlurMsg:
		m = m.Blur()
	case tea.KeyMsg:
		m = m.updateKey(msg)
	case tea.MouseMsg:
		m = m.updateMouse(msg)
	}
	m.rebuildContent()
	return m, m.commands()
}

func (m Model) View() string { return m.viewport.View() }

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.s.container.Content())
}

// commands collects scheduled tasks and pending messages.
func (m Model) commands() tea.Cmd {
	cmds := []tea.Cmd{m.s.sched.flush()}
	for _, msg := range m.s.pending {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	m.s.pending = nil
	return tea.Batch(cmds...)
}

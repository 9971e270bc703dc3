package editor

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/engine"
)

// taskMsg carries a finished task back to the Update loop.
type taskMsg struct {
	sched *scheduler
	id    uint64
	apply func()
}

// scheduler runs engine tasks as Bubble Tea commands. Tasks scheduled while
// handling a message are collected and returned from Update by flush.
type scheduler struct {
	mu     sync.Mutex
	seq    uint64
	live   map[uint64]context.CancelFunc
	queued []tea.Cmd
}

func newScheduler() *scheduler {
	return &scheduler{live: map[uint64]context.CancelFunc{}}
}

func (s *scheduler) Schedule(t engine.Task) func() {
	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.live[id] = cancel
	s.queued = append(s.queued, s.command(ctx, id, t))
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.live, id)
		s.mu.Unlock()
		cancel()
	}
}

func (s *scheduler) command(ctx context.Context, id uint64, t engine.Task) tea.Cmd {
	run := func() tea.Msg {
		if ctx.Err() != nil {
			return nil
		}
		return taskMsg{sched: s, id: id, apply: t.Run(ctx)}
	}
	if t.Delay <= 0 {
		return run
	}
	return tea.Tick(t.Delay, func(time.Time) tea.Msg { return run() })
}

// flush returns the commands queued since the last flush.
func (s *scheduler) flush() tea.Cmd {
	s.mu.Lock()
	cmds := s.queued
	s.queued = nil
	s.mu.Unlock()
	return tea.Batch(cmds...)
}

// finish returns the continuation of a task that is still live.
func (s *scheduler) finish(msg taskMsg) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cancel, ok := s.live[msg.id]
	if !ok {
		return nil
	}
	delete(s.live, msg.id)
	cancel()
	return msg.apply
}

// stop cancels every live task and drops queued commands.
func (s *scheduler) stop() {
	s.mu.Lock()
	live := s.live
	s.live = map[uint64]context.CancelFunc{}
	s.queued = nil
	s.mu.Unlock()
	for _, cancel := range live {
		cancel()
	}
}

package engine

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Task is deferred work. Run may block and honours ctx; the function it
// returns, when non-nil, is applied on the host's event loop.
type Task struct {
	Delay time.Duration
	Run   func(ctx context.Context) func()
}

// Scheduler runs tasks after a delay. A cancelled task never applies its
// result.
type Scheduler interface {
	Schedule(t Task) (cancel func())
}

// NopScheduler drops every task.
type NopScheduler struct{}

func (NopScheduler) Schedule(Task) func() { return func() {} }

// ManualScheduler runs tasks only when time is advanced explicitly.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTask
}

type manualTask struct {
	due    time.Duration
	seq    uint64
	task   Task
	ctx    context.Context
	cancel context.CancelFunc
	done   bool
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (m *ManualScheduler) Schedule(t Task) func() {
	ctx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	m.seq++
	mt := &manualTask{due: m.now + t.Delay, seq: m.seq, task: t, ctx: ctx, cancel: cancel}
	m.pending = append(m.pending, mt)
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		mt.done = true
		m.mu.Unlock()
		cancel()
	}
}

// Advance moves the clock forward by d and runs every task that falls due,
// in due order, including tasks scheduled while advancing.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		mt := m.next(target)
		if mt == nil {
			break
		}
		apply := mt.task.Run(mt.ctx)
		m.mu.Lock()
		cancelled := mt.done
		mt.done = true
		m.mu.Unlock()
		if apply != nil && !cancelled && mt.ctx.Err() == nil {
			apply()
		}
		mt.cancel()
	}
	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

func (m *ManualScheduler) next(target time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := m.pending[:0]
	for _, mt := range m.pending {
		if !mt.done {
			live = append(live, mt)
		}
	}
	m.pending = live
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due != m.pending[j].due {
			return m.pending[i].due < m.pending[j].due
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	if len(m.pending) == 0 || m.pending[0].due > target {
		return nil
	}
	mt := m.pending[0]
	m.pending = m.pending[1:]
	if mt.due > m.now {
		m.now = mt.due
	}
	return mt
}

// Pending returns the number of tasks not yet run or cancelled.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, mt := range m.pending {
		if !mt.done {
			n++
		}
	}
	return n
}

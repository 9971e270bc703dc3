// Package loop runs editor work on a single goroutine.
//
// Engine views are not safe for concurrent use. Hosts that receive input on
// several goroutines (a websocket reader, timers) post it to a Loop, which
// also implements engine.Scheduler so deferred extension work lands on the
// same goroutine.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iw2rmb/inkwell/engine"
)

// ErrClosed is returned when posting to a closed loop.
var ErrClosed = errors.New("loop: closed")

// Loop executes posted functions one at a time, in order. Functions running
// on the loop must not call Do or Close.
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	seq    uint64
	tasks  map[uint64]*task

	done chan struct{}
}

type task struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

// New starts a loop.
func New() *Loop {
	l := &Loop{
		tasks: map[uint64]*task{},
		done:  make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()
		fn()
	}
}

// Post queues fn without waiting for it.
func (l *Loop) Post(fn func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
	return nil
}

// Do runs fn on the loop and waits for it, or for ctx.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	if err := l.Post(func() {
		defer close(ran)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule runs t.Run on its own goroutine after t.Delay and posts the
// continuation back to the loop. A cancelled task never posts.
func (l *Loop) Schedule(t engine.Task) func() {
	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		cancel()
		return func() {}
	}
	l.seq++
	id := l.seq
	tk := &task{cancel: cancel}
	l.tasks[id] = tk
	tk.timer = time.AfterFunc(max(t.Delay, 0), func() {
		if ctx.Err() != nil {
			return
		}
		apply := t.Run(ctx)
		if apply == nil {
			l.forget(id)
			return
		}
		err := l.Post(func() {
			if l.forget(id) && ctx.Err() == nil {
				apply()
			}
		})
		if err != nil {
			l.forget(id)
		}
	})
	l.mu.Unlock()

	return func() {
		if l.forget(id) {
			tk.timer.Stop()
		}
		cancel()
	}
}

// forget drops task id and reports whether it was still live.
func (l *Loop) forget(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.tasks[id]
	delete(l.tasks, id)
	return ok
}

// Pending returns the number of scheduled tasks not yet applied or
// cancelled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Close cancels every task, runs what is already queued and stops the loop.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		for _, tk := range l.tasks {
			tk.timer.Stop()
			tk.cancel()
		}
		l.tasks = map[uint64]*task{}
		l.cond.Broadcast()
	}
	l.mu.Unlock()
	<-l.done
}

package autocomplete

import (
	"context"
	"time"

	"github.com/iw2rmb/inkwell/engine"
)

// DefaultDebounce is the quiet period DebouncedDisplay waits for.
const DefaultDebounce = 300 * time.Millisecond

type debouncer struct {
	v      *engine.View
	delay  time.Duration
	cancel func()
}

// DebouncedDisplay closes the suggestion list on every document change and
// starts a new request once typing has paused for delay. Only the last
// change in a burst schedules a request. Pair it with an Autocompletion that
// does not activate on typing.
func DebouncedDisplay(delay time.Duration) engine.Extension {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return engine.DefinePlugin(func(v *engine.View) engine.PluginValue {
		return &debouncer{v: v, delay: delay}
	})
}

func (d *debouncer) Update(u engine.Update) {
	if !u.DocChanged || u.IsUserEvent("input.complete") {
		return
	}
	CloseCompletion(d.v)
	d.stop()
	v := d.v
	d.cancel = v.Scheduler().Schedule(engine.Task{Delay: d.delay, Run: func(context.Context) func() {
		return func() {
			if !v.Destroyed() {
				StartCompletion(v)
			}
		}
	}})
}

func (d *debouncer) stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *debouncer) Destroy() { d.stop() }

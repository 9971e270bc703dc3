package lint

import (
	"context"
	"time"

	"github.com/iw2rmb/inkwell/engine"
)

// Source computes diagnostics for a document snapshot. It runs off the event
// loop.
type Source func(ctx context.Context, s *engine.State) ([]Diagnostic, error)

// DefaultDelay is how long Linter waits after the last change.
const DefaultDelay = 750 * time.Millisecond

type linter struct {
	v      *engine.View
	src    Source
	delay  time.Duration
	cancel func()
}

// Linter runs src once on start and again whenever the document has been
// idle for delay. A run that a newer change supersedes never applies.
func Linter(src Source, delay time.Duration) engine.Extension {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return engine.DefinePlugin(func(v *engine.View) engine.PluginValue {
		l := &linter{v: v, src: src, delay: delay}
		l.schedule(v.State(), 0)
		return l
	}, lintField)
}

func (l *linter) Update(u engine.Update) {
	if u.DocChanged {
		l.schedule(u.State, l.delay)
	}
}

func (l *linter) schedule(s *engine.State, delay time.Duration) {
	l.stop()
	v, src, log := l.v, l.src, l.v.Logger()
	l.cancel = v.Scheduler().Schedule(engine.Task{Delay: delay, Run: func(ctx context.Context) func() {
		ds, err := src(ctx, s)
		if err != nil {
			if ctx.Err() == nil {
				log.Debug("lint source failed", "error", err)
			}
			return nil
		}
		return func() {
			if v.State().Text() != s.Text() {
				return
			}
			if err := v.Dispatch(SetDiagnostics(ds)); err != nil {
				log.Debug("diagnostics dropped", "error", err)
			}
		}
	}})
}

func (l *linter) stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *linter) Destroy() { l.stop() }

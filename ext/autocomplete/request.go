package autocomplete

import (
	"context"
	"log/slog"

	"github.com/iw2rmb/inkwell/engine"
)

// requester runs sources for pending requests. It keeps one task slot: a new
// request cancels the previous one, and so does leaving the view.
type requester struct {
	v      *engine.View
	seq    uint64
	cancel func()
}

var requestPlugin = engine.DefinePlugin(func(v *engine.View) engine.PluginValue {
	return &requester{v: v}
})

func (r *requester) Update(u engine.Update) {
	cs := completionField.Value(u.State)
	if cs.status != statusPending {
		r.stop()
		return
	}
	if cs.seq == r.seq {
		return
	}
	r.stop()
	r.seq = cs.seq

	v, log := r.v, r.v.Logger()
	sources := sourcesOf(u.State)
	req := Context{State: u.State, Pos: head(u.State), Explicit: cs.explicit}
	seq := cs.seq
	r.cancel = v.Scheduler().Schedule(engine.Task{Run: func(ctx context.Context) func() {
		res := query(ctx, log, sources, req)
		return func() {
			err := v.Dispatch(engine.TransactionSpec{Effects: []engine.Effect{resultEffect.Of(response{seq: seq, result: res})}})
			if err != nil {
				log.Debug("completion result dropped", "error", err)
			}
		}
	}})
}

func (r *requester) stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *requester) Destroy() { r.stop() }

// query asks every source in order. Results starting where the first one
// does are merged; failures count as no suggestions.
func query(ctx context.Context, log *slog.Logger, sources []Source, req Context) *Result {
	var out *Result
	for _, src := range sources {
		if ctx.Err() != nil {
			return nil
		}
		res, err := src(ctx, req)
		if err != nil {
			if ctx.Err() == nil {
				log.Debug("completion source failed", "pos", req.Pos, "error", err)
			}
			continue
		}
		if res == nil || len(res.Options) == 0 {
			continue
		}
		if out == nil {
			out = &Result{From: res.From, Filter: res.Filter}
		}
		if res.From == out.From {
			out.Options = append(out.Options, res.Options...)
		}
	}
	return out
}

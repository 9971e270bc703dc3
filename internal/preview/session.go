package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"

	"github.com/iw2rmb/inkwell/binding"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/internal/loop"
	"github.com/iw2rmb/inkwell/stats"
	"github.com/iw2rmb/inkwell/theme"
)

// Message errors reported to the client in the error field of a frame.
var (
	ErrInvalidMessage = errors.New("invalid message")
	ErrUnknownOp      = errors.New("unknown op")
)

const writeWait = 5 * time.Second

// session owns one live editor. Everything touching the view, including
// websocket writes, runs on the session's loop.
type session struct {
	id   string
	srv  *Server
	conn *websocket.Conn
	loop *loop.Loop
	log  *slog.Logger

	core      *binding.Core
	container *engine.Container
	props     binding.Props
}

func (s *Server) openSession(r *http.Request, id string, conn *websocket.Conn) (*session, error) {
	ss := &session{
		id:        id,
		srv:       s,
		conn:      conn,
		loop:      loop.New(),
		log:       s.log.With("session", id),
		container: engine.NewContainer(id),
	}
	ss.container.Resize(s.cfg.Width, 0)
	ss.core = binding.New(
		binding.WithLogger(ss.log),
		binding.WithScheduler(ss),
		binding.WithObserver(s.observer()),
		binding.WithRenderer(s.rend),
	)
	ss.props = binding.Props{
		Value:      s.doc(r),
		Theme:      theme.FromQuery(r.URL.Query()),
		Extensions: s.extensions(),
		AutoFocus:  true,
	}

	var err error
	if derr := ss.loop.Do(context.Background(), func() {
		if _, err = ss.core.Mount(ss.container, ss.props); err == nil {
			ss.push("")
		}
	}); derr != nil {
		err = derr
	}
	if err != nil {
		ss.loop.Close()
		return nil, err
	}
	return ss, nil
}

// Schedule runs t on the session loop and pushes a frame after its
// continuation applies.
func (ss *session) Schedule(t engine.Task) func() {
	run := t.Run
	t.Run = func(ctx context.Context) func() {
		apply := run(ctx)
		if apply == nil {
			return nil
		}
		return func() {
			apply()
			ss.push("")
		}
	}
	return ss.loop.Schedule(t)
}

// serve reads client messages until the connection fails, then tears the
// session down.
func (ss *session) serve(ctx context.Context) {
	defer ss.close()
	for {
		_, data, err := ss.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ss.log.Debug("read", "error", err)
			}
			return
		}
		if err := ss.loop.Post(func() { ss.handle(ctx, data) }); err != nil {
			return
		}
	}
}

func (ss *session) close() {
	_ = ss.loop.Do(context.Background(), ss.core.Unmount)
	ss.loop.Close()
	ss.conn.Close()
}

func (ss *session) handle(ctx context.Context, data []byte) {
	op := "invalid"
	var err error
	if gjson.ValidBytes(data) {
		msg := gjson.ParseBytes(data)
		op = msg.Get("op").String()
		_, span := ss.srv.startSpan(ctx, "preview.message",
			attribute.String("inkwell.session", ss.id),
			attribute.String("inkwell.op", op),
		)
		err = ss.apply(op, msg)
		endSpan(span, err)
		if errors.Is(err, ErrUnknownOp) {
			op = "unknown"
		}
	} else {
		err = ErrInvalidMessage
	}
	if m := ss.srv.cfg.Metrics; m != nil {
		m.Message(op)
	}
	if err != nil {
		ss.log.Debug("message", "op", op, "error", err)
		ss.push(err.Error())
		return
	}
	ss.push("")
}

func (ss *session) apply(op string, msg gjson.Result) error {
	v := ss.core.View()
	if v == nil {
		return engine.ErrDestroyed
	}
	switch op {
	case "key":
		k := msg.Get("key").String()
		if k == "" {
			return fmt.Errorf("%w: key is required", ErrInvalidMessage)
		}
		if v.HandleKey(k) {
			return nil
		}
		if k == "space" {
			k = " "
		}
		if utf8.RuneCountInString(k) == 1 {
			v.InsertText(k)
		}
	case "input":
		v.InsertText(msg.Get("text").String())
	case "value":
		val := msg.Get("value")
		if !val.Exists() {
			return fmt.Errorf("%w: value is required", ErrInvalidMessage)
		}
		ss.props.Value = val.String()
		_, err := ss.core.Render(ss.container, ss.props)
		return err
	case "theme":
		ss.props.Theme = theme.ParseName(msg.Get("theme").String())
		_, err := ss.core.Render(ss.container, ss.props)
		return err
	case "resize":
		w, h := int(msg.Get("width").Int()), int(msg.Get("height").Int())
		if w < 0 || h < 0 {
			return fmt.Errorf("%w: negative size", ErrInvalidMessage)
		}
		ss.container.Resize(w, h)
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, op)
	}
	return nil
}

// push writes the current view to the client.
func (ss *session) push(errText string) {
	f := frame{
		Session: ss.id,
		Theme:   ss.props.Theme.Name(),
		View:    ss.container.Content(),
		Error:   errText,
	}
	if v := ss.core.View(); v != nil {
		st := toWire(stats.FromState(v.State()))
		f.Stats = &st
	}
	_ = ss.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ss.conn.WriteJSON(f); err != nil {
		ss.log.Debug("write", "error", err)
		ss.conn.Close()
	}
}

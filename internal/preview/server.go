package preview

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/binding"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/internal/metrics"
	"github.com/iw2rmb/inkwell/stats"
	"github.com/iw2rmb/inkwell/theme"
)

const tracerName = "github.com/iw2rmb/inkwell/internal/preview"

// Config configures a Server.
type Config struct {
	Logger *slog.Logger
	// Metrics observes every editor the server mounts and counts requests.
	// Nil disables /metrics.
	Metrics *metrics.Collector
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Extensions returns the fragments each editor is created with. It is
	// called once per snapshot or session.
	Extensions func() []engine.Extension
	// Doc is the document used when a request does not carry one.
	Doc string
	// Width of rendered views in cells. Defaults to 80.
	Width int
	// CheckOrigin overrides the websocket origin check.
	CheckOrigin func(r *http.Request) bool
	// ANSI renders views with 24-bit color escape sequences. Views are
	// plain text otherwise.
	ANSI bool
}

// Server routes preview requests.
type Server struct {
	cfg      Config
	log      *slog.Logger
	rend     *lipgloss.Renderer
	tracer   trace.Tracer
	upgrader websocket.Upgrader
	router   chi.Router

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	rend := lipgloss.NewRenderer(io.Discard)
	rend.SetColorProfile(termenv.Ascii)
	if cfg.ANSI {
		rend.SetColorProfile(termenv.TrueColor)
		rend.SetHasDarkBackground(true)
	}
	s := &Server{
		cfg:    cfg,
		log:    cfg.Logger,
		rend:   rend,
		tracer: otel.Tracer(tracerName),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.CheckOrigin,
		},
		sessions: make(map[string]*session),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/", s.handleSnapshot)
	r.Get("/stats", s.handleStats)
	r.Get("/ws", s.handleSession)
	s.router = r
	return s
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", inkwell.UserAgent())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// Sessions returns the number of open websocket sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close ends every open session. New sessions are refused afterwards.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	open := make([]*session, 0, len(s.sessions))
	for _, ss := range s.sessions {
		open = append(open, ss)
	}
	s.mu.Unlock()
	for _, ss := range open {
		ss.conn.Close()
	}
}

func (s *Server) observer() binding.Observer {
	if s.cfg.Metrics == nil {
		return nil
	}
	return s.cfg.Metrics
}

func (s *Server) extensions() []engine.Extension {
	if s.cfg.Extensions == nil {
		return nil
	}
	return s.cfg.Extensions()
}

func (s *Server) doc(r *http.Request) string {
	q := r.URL.Query()
	if q.Has("doc") {
		return q.Get("doc")
	}
	return s.cfg.Doc
}

func (s *Server) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// render mounts a throwaway editor, passes it to fn and unmounts it.
func (s *Server) render(r *http.Request, fn func(*engine.View)) error {
	opt := theme.FromQuery(r.URL.Query())
	c := engine.NewContainer("")
	c.Resize(s.cfg.Width, 0)
	core := binding.New(
		binding.WithLogger(s.log),
		binding.WithObserver(s.observer()),
		binding.WithRenderer(s.rend),
	)
	v, err := core.Mount(c, binding.Props{
		Value:      s.doc(r),
		Theme:      opt,
		Extensions: s.extensions(),
	})
	if err != nil {
		return err
	}
	defer core.Unmount()
	fn(v)
	return nil
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	opt := theme.FromQuery(r.URL.Query())
	_, span := s.startSpan(r.Context(), "preview.snapshot", attribute.String("inkwell.theme", opt.Name()))
	var content string
	err := s.render(r, func(v *engine.View) { content = v.Container().Content() })
	defer endSpan(span, err)
	if err != nil {
		s.log.Error("snapshot", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Inkwell-Theme", opt.Name())
	_, _ = w.Write([]byte(strings.TrimRight(content, "\n") + "\n"))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	_, span := s.startSpan(r.Context(), "preview.stats")
	var st stats.Statistics
	err := s.render(r, func(v *engine.View) { st = stats.FromState(v.State()) })
	defer endSpan(span, err)
	if err != nil {
		s.log.Error("stats", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toWire(st)); err != nil {
		s.log.Debug("write stats", "error", err)
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		http.Error(w, "server closed", http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("upgrade", "error", err)
		return
	}

	id := uuid.NewString()
	ss, err := s.openSession(r, id, conn)
	if err != nil {
		s.log.Error("open session", "session", id, "error", err)
		_ = conn.WriteJSON(frame{Session: id, Error: err.Error()})
		conn.Close()
		return
	}
	s.mu.Lock()
	s.sessions[id] = ss
	s.mu.Unlock()
	s.log.Info("session opened", "session", id)

	ss.serve(r.Context())

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.log.Info("session closed", "session", id)
}

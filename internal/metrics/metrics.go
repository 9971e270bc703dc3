// Package metrics exports editor lifecycle and preview server activity as
// Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collectors.
type Config struct {
	// Namespace prefixes every metric (default: "inkwell").
	Namespace string
	// Registry receives the collectors (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// Option configures New.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(ns string) Option {
	return func(c *Config) { c.Namespace = ns }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(r prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = r }
}

// Collector implements binding.Observer and instruments HTTP handlers.
type Collector struct {
	mounts       prometheus.Counter
	views        prometheus.Gauge
	reconfigures prometheus.Counter
	syncs        prometheus.Counter
	updates      *prometheus.CounterVec
	failures     *prometheus.CounterVec
	messages     *prometheus.CounterVec
	requests     *prometheus.HistogramVec
}

// New registers the collectors.
func New(opts ...Option) *Collector {
	cfg := Config{Namespace: "inkwell", Registry: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)
	ns := cfg.Namespace

	return &Collector{
		mounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "mounts_total",
			Help:      "Total number of editor views mounted",
		}),
		views: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "views",
			Help:      "Number of live editor views",
		}),
		reconfigures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reconfigures_total",
			Help:      "Total number of reconfigurations dispatched",
		}),
		syncs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "value_syncs_total",
			Help:      "Total number of controlled value replacements",
		}),
		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "updates_total",
			Help:      "Total number of view updates by whether the document changed",
		}, []string{"doc_changed"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "failures_total",
			Help:      "Total number of failed binding operations",
		}, []string{"op"}),
		messages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "websocket_messages_total",
			Help:      "Total number of websocket messages received by op",
		}, []string{"op"}),
		requests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
}

func (c *Collector) Mounted(string) {
	c.mounts.Inc()
	c.views.Inc()
}

func (c *Collector) Unmounted(string) { c.views.Dec() }

func (c *Collector) Reconfigured(string) { c.reconfigures.Inc() }

func (c *Collector) ValueSynced(string) { c.syncs.Inc() }

func (c *Collector) Updated(_ string, docChanged bool) {
	c.updates.WithLabelValues(strconv.FormatBool(docChanged)).Inc()
}

func (c *Collector) Failed(op string, _ error) { c.failures.WithLabelValues(op).Inc() }

// Message counts one websocket message.
func (c *Collector) Message(op string) { c.messages.WithLabelValues(op).Inc() }

// Middleware times requests by chi route pattern, which keeps label
// cardinality bounded.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		c.requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Observe(time.Since(start).Seconds())
	})
}

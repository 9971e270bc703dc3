package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserverCounts(t *testing.T) {
	c := New(WithRegistry(prometheus.NewRegistry()))
	c.Mounted("a")
	c.Mounted("b")
	c.Unmounted("a")
	c.Reconfigured("b")
	c.ValueSynced("b")
	c.Updated("b", true)
	c.Updated("b", false)
	c.Updated("b", false)
	c.Failed("mount", errors.New("boom"))
	c.Message("key")

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"mounts", testutil.ToFloat64(c.mounts), 2},
		{"views", testutil.ToFloat64(c.views), 1},
		{"reconfigures", testutil.ToFloat64(c.reconfigures), 1},
		{"syncs", testutil.ToFloat64(c.syncs), 1},
		{"doc updates", testutil.ToFloat64(c.updates.WithLabelValues("true")), 1},
		{"selection updates", testutil.ToFloat64(c.updates.WithLabelValues("false")), 2},
		{"failures", testutil.ToFloat64(c.failures.WithLabelValues("mount")), 1},
		{"messages", testutil.ToFloat64(c.messages.WithLabelValues("key")), 1},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(WithRegistry(reg), WithNamespace("test"))
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/docs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/docs/1", "/docs/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	if got := testutil.CollectAndCount(c.requests, "test_http_request_duration_seconds"); got != 1 {
		t.Fatalf("series: got %d, want 1", got)
	}
}

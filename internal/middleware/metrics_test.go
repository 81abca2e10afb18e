package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hellosvc/hellosvc/internal/metrics"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()

	r := chi.NewRouter()
	r.Use(Metrics(rec))
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/status", "/status", "/nope", "/also-nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	snap := rec.Snapshot()

	if got := snap.Requests[metrics.RequestKey{Method: "GET", Route: "/status", Status: 200}]; got != 2 {
		t.Errorf("GET /status 200 = %d, want 2", got)
	}
	if got := snap.Requests[metrics.RequestKey{Method: "GET", Route: metrics.RouteUnmatched, Status: 404}]; got != 2 {
		t.Errorf("GET unmatched 404 = %d, want 2", got)
	}
	if snap.DurationCount != 4 {
		t.Errorf("DurationCount = %d, want 4", snap.DurationCount)
	}
}

func TestMetrics_WithoutRouter(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	handler := Metrics(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	key := metrics.RequestKey{Method: "GET", Route: metrics.RouteUnmatched, Status: http.StatusTeapot}
	if got := rec.Snapshot().Requests[key]; got != 1 {
		t.Errorf("%s = %d, want 1", key, got)
	}
}

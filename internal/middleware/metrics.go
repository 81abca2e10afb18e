package middleware

import (
	"net/http"
	"time"

	"github.com/hellosvc/hellosvc/internal/metrics"
)

// Metrics returns a middleware that reports every request to recorder,
// labelled by the matched route pattern so raw paths never become labels.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			route := routePattern(r)
			if route == "" || wrapped.status == http.StatusNotFound {
				route = metrics.RouteUnmatched
			}

			recorder.ObserveHTTPRequest(r.Method, route, wrapped.status, time.Since(start))
		})
	}
}

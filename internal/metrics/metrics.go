// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// RouteUnmatched is the route label for requests no route handled.
const RouteUnmatched = "unmatched"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory.
type Recorder interface {
	// ObserveHTTPRequest records one served request. route is the router
	// pattern (e.g. "/status"), never the raw path.
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

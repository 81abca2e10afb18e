package metrics

import (
	"strconv"
	"sync"
	"time"
)

// RequestKey identifies one request counter series.
type RequestKey struct {
	Method string
	Route  string
	Status int
}

// String renders the key the way it appears in logs and test failures.
func (k RequestKey) String() string {
	return k.Method + " " + k.Route + " " + strconv.Itoa(k.Status)
}

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Requests        map[RequestKey]uint64
	DurationCount   uint64
	DurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu              sync.Mutex
	requests        map[RequestKey]uint64
	durationCount   uint64
	durationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{requests: make(map[RequestKey]uint64)}
}

// ObserveHTTPRequest increments the series for the request and its duration totals.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests[RequestKey{Method: method, Route: route, Status: status}]++
	m.durationCount++
	m.durationTotalNs += duration.Nanoseconds()
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	requests := make(map[RequestKey]uint64, len(m.requests))
	for k, v := range m.requests {
		requests[k] = v
	}

	return Snapshot{
		Requests:        requests,
		DurationCount:   m.durationCount,
		DurationTotalNs: m.durationTotalNs,
	}
}

// Package probe provides lazily connected dependency pingers for readiness checks.
//
// Constructors only parse configuration; no connection is made until Ping,
// so an unreachable dependency never delays startup.
package probe

import "context"

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

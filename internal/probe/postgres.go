package probe

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres pings a PostgreSQL server through a small pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres parses databaseURL and builds a pool without connecting.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// A readiness probe needs one connection at most.
	config.MaxConns = 1
	config.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Name implements Pinger.
func (p *Postgres) Name() string { return "postgres" }

// Ping checks database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

// Package pg opens the Postgres pool behind the optional material table
package pg

import (
	"context"
	"fmt"
	"time"

	"trainerbot/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures Open
type Config struct {
	URL      string
	MaxConns int32
	// LogSQL logs every statement through the zerolog tracer
	LogSQL bool
	// Slow logs statements at warn level once they take at least Slow, 0 disables
	Slow time.Duration
	// ConnectAttempts bounds the startup ping loop, 10 when zero
	ConnectAttempts int
	PingTimeout     time.Duration
}

// PG wraps the pool
type PG struct {
	Pool *pgxpool.Pool
}

var newPool = pgxpool.NewWithConfig

// Open builds the pool and pings it with backoff until the database answers
// The pool is only returned once it is usable
func Open(ctx context.Context, cfg Config) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.LogSQL || cfg.Slow > 0 {
		pcfg.ConnConfig.Tracer = NewTracer(*logger.Named("pg"), cfg.LogSQL, cfg.Slow)
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	p := &PG{Pool: pool}
	if err := p.waitReady(ctx, cfg); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *PG) waitReady(ctx context.Context, cfg Config) error {
	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 10
	}
	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	const ceiling = 2 * time.Second
	backoff := 150 * time.Millisecond
	var lastErr error
	for i := range attempts {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return nil
		}
		logger.Named("pg").Debug().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, ceiling)
	}
	return fmt.Errorf("pg: ping failed after %d attempts: %w", attempts, lastErr)
}

// Query runs sql on the pool
func (p *PG) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.Pool.Query(ctx, sql, args...)
}

// Ping reports whether the database answers
func (p *PG) Ping(ctx context.Context) error { return p.Pool.Ping(ctx) }

// Close releases the pool, nil safe
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/itbasis/go-clock"
)

// ErrNotConfigured is returned when no connection string was provided.
var ErrNotConfigured = errors.New("database not configured")

// Provider hands out the process wide DB handle.
type Provider interface {
	Get(ctx context.Context) (DB, error)
}

// Lazy connects to Postgres on first use and then shares the connection pool
// for the lifetime of the process. A failed connection attempt is not cached,
// the next call tries again.
type Lazy struct {
	connString string
	clock      clock.Clock

	mu sync.Mutex
	db DB
}

func NewLazy(connString string, clock clock.Clock) *Lazy {
	return &Lazy{connString: connString, clock: clock}
}

func (l *Lazy) Get(ctx context.Context) (DB, error) {
	if l.connString == "" {
		return nil, ErrNotConfigured
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db, nil
	}

	db, err := New(ctx, l.connString, l.clock)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	l.db = db
	return db, nil
}

type ready struct {
	db DB
}

// Ready wraps an already connected DB as a Provider.
func Ready(db DB) Provider {
	return &ready{db: db}
}

func (r *ready) Get(_ context.Context) (DB, error) {
	if r.db == nil {
		return nil, ErrNotConfigured
	}
	return r.db, nil
}

package storage

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Selector holds the process-wide choice of storage backend. It starts on
// the durable store when the probe succeeds and flips to the in-memory
// fallback on startup failure or on a detected connection loss. The flip is
// one way: once degraded, a process never goes back to MySQL.
type Selector struct {
	mu       sync.RWMutex
	active   Backend
	fallback *VolatileStore
	degraded bool
}

// NewSelector builds a selector with primary active and the in-memory
// store standing by as the degrade target
func NewSelector(primary Backend, fallback *VolatileStore) *Selector {
	return &Selector{active: primary, fallback: fallback}
}

// Probe attempts the single bounded-timeout MySQL connection and returns a
// selector on the durable store, or one already degraded to memory when
// the database is unreachable.
func Probe(dsn string, connectTimeout time.Duration) *Selector {
	fallback := NewVolatileStore()
	rel, err := OpenRelational(dsn, connectTimeout)
	if err != nil {
		logrus.WithError(err).Warn("MySQL unreachable, starting in memory-storage mode")
		sel := &Selector{active: fallback, fallback: fallback, degraded: true}
		fallback.SeedDemoUser()
		logrus.Warn("All data will be lost when the server restarts")
		return sel
	}
	logrus.Info("Connected to MySQL, using durable storage")
	return NewSelector(rel, fallback)
}

// Active returns the backend every operation should run against
func (s *Selector) Active() Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Degraded reports whether the process has fallen back to memory storage
func (s *Selector) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Degrade switches to the in-memory fallback after a connection loss.
// Idempotent; later calls are no-ops.
func (s *Selector) Degrade(reason error) {
	s.mu.Lock()
	if s.degraded {
		s.mu.Unlock()
		return
	}
	s.degraded = true
	s.active = s.fallback
	s.mu.Unlock()

	s.fallback.SeedDemoUser()
	logrus.WithError(reason).Warn("Database connection lost, degraded to memory storage for the rest of this process")
}

// Package jobstore is the TTL-indexed in-memory table of terminal job
// results. The interface is narrow (Put, Get, Sweep) so a durable store can
// replace it without touching callers.
package jobstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// Store maps job IDs to terminal results. Reads dominate writes; the map is
// guarded by a reader-writer mutex.
type Store struct {
	mu      sync.RWMutex
	entries map[string]models.JobResult

	ttl           time.Duration
	sweepInterval time.Duration

	stopOnce sync.Once
	stopped  chan struct{}
	sweepWG  sync.WaitGroup
}

// New creates a store with the configured TTL and sweep interval.
func New(cfg *config.StoreConfig) *Store {
	return &Store{
		entries:       make(map[string]models.JobResult),
		ttl:           cfg.TTL,
		sweepInterval: cfg.SweepInterval,
		stopped:       make(chan struct{}),
	}
}

// Put records a terminal result. A job's first terminal result wins; a
// second Put for the same ID is dropped so status never regresses.
func (s *Store) Put(result models.JobResult) {
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[result.JobID]; ok {
		slog.Warn("Duplicate terminal result for job, keeping first",
			"job_id", result.JobID,
			"existing_status", existing.Status,
			"dropped_status", result.Status)
		return
	}
	s.entries[result.JobID] = result
}

// Get returns the terminal result for a job, if present.
func (s *Store) Get(jobID string) (models.JobResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.entries[jobID]
	return result, ok
}

// Sweep deletes entries older than the TTL relative to now. Returns the
// number removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.entries {
		if now.Sub(entry.Timestamp) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("Swept expired job results", "removed", removed, "remaining", len(s.entries))
	}
	return removed
}

// Len returns the number of stored results. Diagnostics only.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Start launches the periodic sweeper. It runs until Stop is called or ctx is
// cancelled.
func (s *Store) Start(ctx context.Context) {
	s.sweepWG.Add(1)
	go func() {
		defer s.sweepWG.Done()
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopped:
				return
			case now := <-ticker.C:
				s.Sweep(now)
			}
		}
	}()
	slog.Info("Job store sweeper started", "ttl", s.ttl, "interval", s.sweepInterval)
}

// Stop halts the sweeper. Safe to call multiple times.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopped)
	})
	s.sweepWG.Wait()
}

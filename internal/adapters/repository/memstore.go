package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/roster/internal/domain/record"
	"github.com/okian/roster/pkg/metrics"
)

// MemStore is the in-memory Store implementation.
//
// Collections are append-only ordered slices; updates mutate elements in
// place. A single RWMutex guards all collections, so "at most one mutator at
// a time" holds regardless of how the HTTP layer schedules requests. Records
// are deep-copied on the way in and out; callers never alias internal maps.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string][]record.Record

	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
}

const defaultMetricsUpdateInterval = 5 * time.Second

// NewMemStore constructs a memory store with configuration options.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		collections:           make(map[string][]record.Record),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)

	return s
}

// Close gracefully shuts down the background metrics goroutine.
func (s *MemStore) Close() error {
	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// List implements Store.List. The result is a copy in insertion order; an
// unknown collection returns an empty, non-nil slice.
func (s *MemStore) List(ctx context.Context, collection string) ([]record.Record, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOpLatency("list", float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.collections[collection]
	out := make([]record.Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// Append implements Store.Append.
func (s *MemStore) Append(ctx context.Context, collection string, rec record.Record) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOpLatency("append", float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], rec.Clone())
	count := len(s.collections[collection])
	s.mu.Unlock()

	metrics.RecordCreated()
	metrics.UpdateStoreRecords(collection, count)
	return nil
}

// MergeFirst implements Store.MergeFirst. Only the first match (lowest
// insertion index) is mutated even when duplicate ids exist.
func (s *MemStore) MergeFirst(ctx context.Context, collection string, id int64, patch record.Record) (record.Record, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOpLatency("merge", float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.collections[collection] {
		recID, ok := rec.ID()
		if !ok {
			continue
		}
		if recID == id {
			rec.Merge(patch.Clone())
			metrics.RecordUpdated()
			return rec.Clone(), nil
		}
	}

	metrics.RecordUpdateMiss()
	metrics.RecordErrorByComponent("repository", "not_found")
	return nil, ErrNotFound
}

// Count returns the number of records in a collection.
func (s *MemStore) Count(ctx context.Context, collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// Collections returns the names of non-empty collections, for stats.
func (s *MemStore) Collections(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name, recs := range s.collections {
		if len(recs) > 0 {
			names = append(names, name)
		}
	}
	return names
}

// startMetricsUpdater starts a background goroutine that refreshes
// per-collection record gauges at the configured interval.
func (s *MemStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *MemStore) updateMetrics() {
	s.mu.RLock()
	counts := make(map[string]int, len(s.collections))
	for name, recs := range s.collections {
		counts[name] = len(recs)
	}
	s.mu.RUnlock()

	for name, count := range counts {
		metrics.UpdateStoreRecords(name, count)
	}
}

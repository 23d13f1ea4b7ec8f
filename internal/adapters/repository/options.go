package repository

import (
	"time"

	"github.com/okian/roster/internal/domain/record"
)

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSeed pre-populates a collection with records at construction time.
func WithSeed(collection string, recs []record.Record) Option {
	return func(s *MemStore) {
		for _, rec := range recs {
			s.collections[collection] = append(s.collections[collection], rec.Clone())
		}
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

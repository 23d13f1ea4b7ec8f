// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/record"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// sampleProducts mirrors the rows the service ships with when product
// seeding is enabled.
var sampleProducts = []record.Record{
	{"id": float64(1), "name": "Product 1"},
	{"id": float64(2), "name": "Product 2"},
}

// Service owns the record store and exposes the operations the HTTP API
// needs. The store is injected into handlers through this type; nothing is
// package-level.
type Service struct {
	mu sync.RWMutex

	store *repository.MemStore

	// Configuration
	seedProducts bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeedProducts controls whether the products collection is seeded with
// sample rows on startup.
func WithSeedProducts(seed bool) Option {
	return func(s *Service) {
		s.seedProducts = seed
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seedProducts: true,
		logger:       nil, // resolved on Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the record store. Collections start empty (products
// optionally seeded); state lives only for the process lifetime.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	opts := []repository.Option{}
	if s.seedProducts {
		opts = append(opts, repository.WithSeed(repository.Products, sampleProducts))
	}
	s.store = repository.NewMemStore(ctx, opts...)

	s.started = true
	s.logger.Info(ctx, "record service started",
		logger.Bool("seedProducts", s.seedProducts),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "record service stopped")
}

// ListUsers returns all user records in insertion order.
func (s *Service) ListUsers(ctx context.Context) ([]record.Record, error) {
	return s.store.List(ctx, repository.Users)
}

// CreateUser appends a record to the users collection unconditionally.
func (s *Service) CreateUser(ctx context.Context, rec record.Record) error {
	if err := s.store.Append(ctx, repository.Users, rec); err != nil {
		return err
	}
	s.logger.Debug(ctx, "user created", logger.Int("total", s.store.Count(ctx, repository.Users)))
	return nil
}

// UpdateUser shallow-merges patch into the first user whose integer id
// matches. Returns repository.ErrNotFound when no record matches.
func (s *Service) UpdateUser(ctx context.Context, id int64, patch record.Record) (record.Record, error) {
	merged, err := s.store.MergeFirst(ctx, repository.Users, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "user updated", logger.Int64("id", id))
	return merged, nil
}

// ListProducts returns all product records in insertion order.
func (s *Service) ListProducts(ctx context.Context) ([]record.Record, error) {
	return s.store.List(ctx, repository.Products)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		users := s.store.Count(ctx, repository.Users)
		products := s.store.Count(ctx, repository.Products)

		stats["totalUsers"] = users
		stats["totalProducts"] = products

		metrics.UpdateStoreRecords(repository.Users, users)
		metrics.UpdateStoreRecords(repository.Products, products)
	}

	return stats
}

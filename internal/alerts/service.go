package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dportela/procura/backend/internal/contracts"
	"github.com/dportela/procura/backend/pkg/redis"
)

// Service wires the engine to its collaborators: repositories for the
// input snapshot and a redis cache for computed summaries. The engine
// itself stays pure; everything stateful lives here.
type Service struct {
	engine    *Engine
	orders    contracts.OrderRepository
	suppliers contracts.SupplierRepository
	cache     *redis.Cache
	cacheTTL  time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewService creates an alert service. The clock defaults to time.Now;
// tests override it with WithClock.
func NewService(
	engine *Engine,
	orders contracts.OrderRepository,
	suppliers contracts.SupplierRepository,
	cache *redis.Cache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *Service {
	return &Service{
		engine:    engine,
		orders:    orders,
		suppliers: suppliers,
		cache:     cache,
		cacheTTL:  cacheTTL,
		now:       time.Now,
		log:       log.With().Str("component", "alerts.service").Logger(),
	}
}

// WithClock overrides the reference clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Summary returns the alert summary for a reference date, from cache
// when possible. A zero refDate means "now" per the service clock.
func (s *Service) Summary(ctx context.Context, refDate time.Time) (*contracts.AlertSummary, error) {
	if refDate.IsZero() {
		refDate = s.now()
	}
	refDate = truncateToDay(refDate)

	key := redis.AlertSummaryKey(refDate.Format("2006-01-02"))

	var cached contracts.AlertSummary
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// A broken cache entry is not fatal; recompute
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if found && err == nil {
		return &cached, nil
	}

	summary, err := s.compute(ctx, refDate)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}

	return summary, nil
}

// Refresh recomputes the summary for the current date and overwrites
// the cache. Used by the scheduled refresh job.
func (s *Service) Refresh(ctx context.Context) (*contracts.AlertSummary, error) {
	refDate := truncateToDay(s.now())

	summary, err := s.compute(ctx, refDate)
	if err != nil {
		return nil, err
	}

	key := redis.AlertSummaryKey(refDate.Format("2006-01-02"))
	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}

	return summary, nil
}

// compute fetches the snapshot and runs the engine
func (s *Service) compute(ctx context.Context, refDate time.Time) (*contracts.AlertSummary, error) {
	rawOrders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	suppliers, err := s.suppliers.ListAll(ctx)
	if err != nil {
		// Supplier reference data is optional: without it, labels fall
		// back to the order's own supplier fields.
		s.log.Warn().Err(err).Msg("supplier reference data unavailable")
		suppliers = nil
	}

	return s.engine.Evaluate(ctx, rawOrders, suppliers, refDate)
}

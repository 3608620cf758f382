package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/catalog/observability/metrics"
	"github.com/rise-and-shine/catalog/repogen"
)

type metricsStore[E any, ID comparable] struct {
	next      repogen.Store[E, ID]
	metrics   *metrics.StoreMetrics
	storeName string
}

// NewMetricsStore records the outcome and latency of every call of next.
func NewMetricsStore[E any, ID comparable](
	next repogen.Store[E, ID],
	m *metrics.StoreMetrics,
	storeName string,
) repogen.Store[E, ID] {
	return &metricsStore[E, ID]{next: next, metrics: m, storeName: storeName}
}

func (s *metricsStore[E, ID]) GetByID(ctx context.Context, id ID) (*E, bool, error) {
	start := time.Now()
	entity, found, err := s.next.GetByID(ctx, id)
	s.metrics.Observe(s.storeName, opGetByID, outcome(err, found), time.Since(start))
	return entity, found, err
}

func (s *metricsStore[E, ID]) GetAll(ctx context.Context) ([]E, error) {
	start := time.Now()
	entities, err := s.next.GetAll(ctx)
	s.metrics.Observe(s.storeName, opGetAll, outcome(err, true), time.Since(start))
	return entities, err
}

func (s *metricsStore[E, ID]) Add(ctx context.Context, entity *E) (ID, error) {
	start := time.Now()
	id, err := s.next.Add(ctx, entity)
	s.metrics.Observe(s.storeName, opAdd, outcome(err, true), time.Since(start))
	return id, err
}

func (s *metricsStore[E, ID]) Update(ctx context.Context, entity *E) (int64, error) {
	start := time.Now()
	n, err := s.next.Update(ctx, entity)
	s.metrics.Observe(s.storeName, opUpdate, outcome(err, true), time.Since(start))
	return n, err
}

func (s *metricsStore[E, ID]) Delete(ctx context.Context, id ID) (int64, error) {
	start := time.Now()
	n, err := s.next.Delete(ctx, id)
	s.metrics.Observe(s.storeName, opDelete, outcome(err, true), time.Since(start))
	return n, err
}

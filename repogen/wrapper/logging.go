package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/repogen"
)

type loggingStore[E any, ID comparable] struct {
	next   repogen.Store[E, ID]
	logger logger.Logger
}

// NewLoggingStore logs every call of next at debug level. Not found results are
// logged at debug level too, other errors at error level.
func NewLoggingStore[E any, ID comparable](
	next repogen.Store[E, ID],
	log logger.Logger,
	storeName string,
) repogen.Store[E, ID] {
	return &loggingStore[E, ID]{
		next:   next,
		logger: log.Named("repogen.store").With("store_name", storeName),
	}
}

func (s *loggingStore[E, ID]) GetByID(ctx context.Context, id ID) (*E, bool, error) {
	start := time.Now()
	entity, found, err := s.next.GetByID(ctx, id)
	s.log(ctx, opGetByID, start, err, "id", id, "found", found)
	return entity, found, err
}

func (s *loggingStore[E, ID]) GetAll(ctx context.Context) ([]E, error) {
	start := time.Now()
	entities, err := s.next.GetAll(ctx)
	s.log(ctx, opGetAll, start, err, "count", len(entities))
	return entities, err
}

func (s *loggingStore[E, ID]) Add(ctx context.Context, entity *E) (ID, error) {
	start := time.Now()
	id, err := s.next.Add(ctx, entity)
	s.log(ctx, opAdd, start, err, "id", id)
	return id, err
}

func (s *loggingStore[E, ID]) Update(ctx context.Context, entity *E) (int64, error) {
	start := time.Now()
	n, err := s.next.Update(ctx, entity)
	s.log(ctx, opUpdate, start, err, "affected", n)
	return n, err
}

func (s *loggingStore[E, ID]) Delete(ctx context.Context, id ID) (int64, error) {
	start := time.Now()
	n, err := s.next.Delete(ctx, id)
	s.log(ctx, opDelete, start, err, "id", id, "affected", n)
	return n, err
}

func (s *loggingStore[E, ID]) log(ctx context.Context, op string, start time.Time, err error, kv ...any) {
	log := s.logger.
		WithContext(ctx).
		With("operation", op, "duration", time.Since(start).String()).
		With(kv...)

	switch {
	case err == nil:
		log.Debug("store call")
	case repogen.IsNotFound(err):
		log.With("error_code", errx.AsErrorX(err).Code()).Debug("store call")
	default:
		log.Errorx(err)
	}
}

package wrapper

import (
	"context"
	"fmt"

	"github.com/rise-and-shine/catalog/repogen"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type tracingStore[E any, ID comparable] struct {
	next      repogen.Store[E, ID]
	tracer    trace.Tracer
	storeName string
}

// NewTracingStore opens a span per call of next. Not found results are not
// recorded as span errors.
func NewTracingStore[E any, ID comparable](next repogen.Store[E, ID], storeName string) repogen.Store[E, ID] {
	return &tracingStore[E, ID]{
		next:      next,
		tracer:    otel.Tracer("repogen/store"),
		storeName: storeName,
	}
}

func (s *tracingStore[E, ID]) GetByID(ctx context.Context, id ID) (*E, bool, error) {
	ctx, span := s.start(ctx, opGetByID, attribute.String("store.id", fmt.Sprint(id)))
	defer span.End()

	entity, found, err := s.next.GetByID(ctx, id)
	span.SetAttributes(attribute.Bool("store.found", found))
	s.finish(span, err)
	return entity, found, err
}

func (s *tracingStore[E, ID]) GetAll(ctx context.Context) ([]E, error) {
	ctx, span := s.start(ctx, opGetAll)
	defer span.End()

	entities, err := s.next.GetAll(ctx)
	span.SetAttributes(attribute.Int("store.count", len(entities)))
	s.finish(span, err)
	return entities, err
}

func (s *tracingStore[E, ID]) Add(ctx context.Context, entity *E) (ID, error) {
	ctx, span := s.start(ctx, opAdd)
	defer span.End()

	id, err := s.next.Add(ctx, entity)
	span.SetAttributes(attribute.String("store.id", fmt.Sprint(id)))
	s.finish(span, err)
	return id, err
}

func (s *tracingStore[E, ID]) Update(ctx context.Context, entity *E) (int64, error) {
	ctx, span := s.start(ctx, opUpdate)
	defer span.End()

	n, err := s.next.Update(ctx, entity)
	span.SetAttributes(attribute.Int64("store.affected", n))
	s.finish(span, err)
	return n, err
}

func (s *tracingStore[E, ID]) Delete(ctx context.Context, id ID) (int64, error) {
	ctx, span := s.start(ctx, opDelete, attribute.String("store.id", fmt.Sprint(id)))
	defer span.End()

	n, err := s.next.Delete(ctx, id)
	span.SetAttributes(attribute.Int64("store.affected", n))
	s.finish(span, err)
	return n, err
}

func (s *tracingStore[E, ID]) start(
	ctx context.Context,
	op string,
	attrs ...attribute.KeyValue,
) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("store.name", s.storeName), attribute.String("store.operation", op))
	return s.tracer.Start(ctx, s.storeName+"."+op, trace.WithAttributes(attrs...))
}

func (s *tracingStore[E, ID]) finish(span trace.Span, err error) {
	if err == nil || repogen.IsNotFound(err) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

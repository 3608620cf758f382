package repogen

import (
	"context"
	"sync"
)

// TrackingStore records the identifiers of entities successfully updated or
// deleted through it. Transaction scoped stores use it to learn which cache
// entries to evict once the transaction has committed.
type TrackingStore[E any, ID comparable, P Entity[E, ID]] struct {
	next Store[E, ID]

	mu      sync.Mutex
	changed []ID
	seen    map[ID]struct{}
}

// NewTrackingStore wraps next.
func NewTrackingStore[E any, ID comparable, P Entity[E, ID]](next Store[E, ID]) *TrackingStore[E, ID, P] {
	return &TrackingStore[E, ID, P]{next: next, seen: make(map[ID]struct{})}
}

func (s *TrackingStore[E, ID, P]) GetByID(ctx context.Context, id ID) (*E, bool, error) {
	return s.next.GetByID(ctx, id)
}

func (s *TrackingStore[E, ID, P]) GetAll(ctx context.Context) ([]E, error) {
	return s.next.GetAll(ctx)
}

func (s *TrackingStore[E, ID, P]) Add(ctx context.Context, entity *E) (ID, error) {
	return s.next.Add(ctx, entity)
}

func (s *TrackingStore[E, ID, P]) Update(ctx context.Context, entity *E) (int64, error) {
	n, err := s.next.Update(ctx, entity)
	if err == nil {
		s.track(P(entity).GetID())
	}
	return n, err
}

func (s *TrackingStore[E, ID, P]) Delete(ctx context.Context, id ID) (int64, error) {
	n, err := s.next.Delete(ctx, id)
	if err == nil {
		s.track(id)
	}
	return n, err
}

// Changed returns the changed identifiers in first change order.
func (s *TrackingStore[E, ID, P]) Changed() []ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ID(nil), s.changed...)
}

func (s *TrackingStore[E, ID, P]) track(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.changed = append(s.changed, id)
}

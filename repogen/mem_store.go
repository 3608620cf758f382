package repogen

import (
	"context"
	"sync"
	"time"

	"github.com/code19m/errx"
)

// MemStore is a Store keeping entities in process memory.
//
// Entities are stored as value copies, so mutating an entity after Add or Update
// does not change the persisted state. GetAll returns entities in insertion order.
type MemStore[E any, ID comparable, P Entity[E, ID]] struct {
	settings

	seq Sequence[ID]
	now func() time.Time

	mu       sync.RWMutex
	entities map[ID]E
	order    []ID
}

// Verify that MemStore implements Store.
var _ Store[memProbe, int] = (*MemStore[memProbe, int, *memProbe])(nil)

// NewMemStore creates an empty in-memory store. Identifiers of entities added
// with a zero ID are taken from seq.
func NewMemStore[E any, ID comparable, P Entity[E, ID]](seq Sequence[ID], opts ...Option) *MemStore[E, ID, P] {
	return &MemStore[E, ID, P]{
		settings: newSettings[E](opts),
		seq:      seq,
		now:      time.Now,
		entities: make(map[ID]E),
	}
}

func (r *MemStore[E, ID, P]) GetByID(_ context.Context, id ID) (*E, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.entities[id]
	if !ok {
		return nil, false, nil
	}
	return &entity, true, nil
}

func (r *MemStore[E, ID, P]) GetAll(_ context.Context) ([]E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entities := make([]E, 0, len(r.order))
	for _, id := range r.order {
		entities = append(entities, r.entities[id])
	}
	return entities, nil
}

func (r *MemStore[E, ID, P]) Add(ctx context.Context, entity *E) (ID, error) {
	var zero ID
	if entity == nil {
		return zero, r.invalid("add")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := P(entity)
	id := p.GetID()
	if _, exists := r.entities[id]; exists && id != zero {
		return zero, r.conflict("creating", "", errx.D{"id": id})
	}
	if err := r.checkUnique("creating", entity, zero); err != nil {
		return zero, err
	}
	if id == zero {
		next, err := r.nextFreeID(ctx)
		if err != nil {
			return zero, errx.Wrap(err)
		}
		id = next
	}

	p.SetID(id)
	stampCreated(entity, r.now())

	r.entities[id] = *entity
	r.order = append(r.order, id)
	return id, nil
}

func (r *MemStore[E, ID, P]) Update(_ context.Context, entity *E) (int64, error) {
	if entity == nil {
		return 0, r.invalid("update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := P(entity).GetID()
	if _, exists := r.entities[id]; !exists {
		return 0, r.notFound("update", id)
	}
	if err := r.checkUnique("updating", entity, id); err != nil {
		return 0, err
	}

	stampUpdated(entity, r.now())
	r.entities[id] = *entity
	return 1, nil
}

func (r *MemStore[E, ID, P]) Delete(_ context.Context, id ID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[id]; !exists {
		return 0, r.notFound("delete", id)
	}

	delete(r.entities, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// Len returns the number of stored entities.
func (r *MemStore[E, ID, P]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// checkUnique reports a conflict when another entity than self shares a unique key value with entity.
// Must be called with the write lock held.
func (r *MemStore[E, ID, P]) checkUnique(op string, entity *E, self ID) error {
	for _, u := range r.uniqueKeys {
		value := u.key(entity)
		for id, stored := range r.entities {
			if id == self || u.key(&stored) != value {
				continue
			}
			return r.conflict(op, r.conflictCodes[u.name], errx.D{
				"constraint": u.name,
				"value":      value,
			})
		}
	}
	return nil
}

// nextFreeID draws identifiers until one is not taken by a caller assigned entity.
// Must be called with the write lock held.
func (r *MemStore[E, ID, P]) nextFreeID(ctx context.Context) (ID, error) {
	var zero ID
	if r.seq == nil {
		return zero, r.noSequence()
	}
	for {
		id, err := r.seq.Next(ctx)
		if err != nil {
			return zero, errx.Wrap(err)
		}
		if _, taken := r.entities[id]; !taken && id != zero {
			return id, nil
		}
	}
}

// memProbe is only used for the compile time interface check.
type memProbe struct{}

func (*memProbe) GetID() int { return 0 }
func (*memProbe) SetID(int)  {}

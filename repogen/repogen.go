// Package repogen provides a generic entity store contract for data access patterns.
//
// It defines one generic interface for create/read/update/delete operations over any
// entity type, together with implementations for in-memory, PostgreSQL (bun) and MongoDB
// backends and a read-through cache decorator. The contract is instantiated per entity type
// without any entity specific code in the stores.
package repogen

import (
	"context"
)

// Entity is the constraint an entity type E must satisfy to be persisted by a store.
// The identifier methods are implemented on the pointer type. The zero value of ID means
// that no identifier has been assigned yet.
type Entity[E any, ID comparable] interface {
	*E
	// GetID returns the entity identifier.
	GetID() ID
	// SetID assigns the entity identifier.
	SetID(id ID)
}

// Store defines a generic store for entities of type E identified by ID.
type Store[E any, ID comparable] interface {
	// GetByID retrieves a single entity by its identifier.
	// Returns found=false and a nil entity when no entity exists. Absence is not an error.
	GetByID(ctx context.Context, id ID) (*E, bool, error)
	// GetAll returns every persisted entity. An empty store yields an empty slice.
	GetAll(ctx context.Context) ([]E, error)
	// Add persists a new entity and returns its identifier.
	// A zero identifier is assigned by the store, a non-zero one is kept as is.
	Add(ctx context.Context, entity *E) (ID, error)
	// Update replaces the persisted state of the entity with the same identifier.
	// Returns the number of affected entities. When nothing matches it returns 0
	// and a not found error.
	Update(ctx context.Context, entity *E) (int64, error)
	// Delete removes the entity with the given identifier.
	// Returns the number of removed entities with the same not found policy as Update.
	Delete(ctx context.Context, id ID) (int64, error)
}

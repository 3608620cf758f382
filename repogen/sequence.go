package repogen

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// Sequence generates identifiers for stores whose backend does not assign them.
type Sequence[ID comparable] interface {
	// Next returns a new identifier.
	Next(ctx context.Context) (ID, error)
}

// SequenceFunc adapts a plain function to the Sequence interface.
type SequenceFunc[ID comparable] func(ctx context.Context) (ID, error)

// Next implements Sequence.
func (f SequenceFunc[ID]) Next(ctx context.Context) (ID, error) {
	return f(ctx)
}

// Integer is the set of identifier types supported by IntSequence.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// IntSequence returns a process local sequence yielding 1, 2, 3...
func IntSequence[ID Integer]() Sequence[ID] {
	var counter atomic.Uint64
	return SequenceFunc[ID](func(context.Context) (ID, error) {
		return ID(counter.Add(1)), nil
	})
}

// UUIDSequence returns a sequence of random (v4) UUIDs.
func UUIDSequence() Sequence[uuid.UUID] {
	return SequenceFunc[uuid.UUID](func(context.Context) (uuid.UUID, error) {
		return uuid.New(), nil
	})
}

// UUIDStringSequence returns a sequence of random (v4) UUIDs in their string form.
func UUIDStringSequence() Sequence[string] {
	return SequenceFunc[string](func(context.Context) (string, error) {
		return uuid.NewString(), nil
	})
}

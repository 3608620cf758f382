// Package ucdef defines use case definitions that are used across the application.
package ucdef

import "context"

// UserAction represents a synchronous business operation triggered by user interaction.
// It handles user-initiated requests and returns an immediate response.
//
// Type parameters:
//   - I: Input data type (request payload)
//   - O: Output data type (result of the operation)
//
// Examples: CreateProduct, GetProduct, DeleteProduct
type UserAction[I, O any] interface {
	// OperationID returns a unique identifier for the use case.
	OperationID() string

	// Execute executes the use case.
	Execute(ctx context.Context, in I) (O, error)
}

// Action adapts an operation id and a function to the UserAction interface.
func Action[I, O any](operationID string, fn func(ctx context.Context, in I) (O, error)) UserAction[I, O] {
	return action[I, O]{operationID: operationID, fn: fn}
}

type action[I, O any] struct {
	operationID string
	fn          func(ctx context.Context, in I) (O, error)
}

func (a action[I, O]) OperationID() string { return a.operationID }

func (a action[I, O]) Execute(ctx context.Context, in I) (O, error) { return a.fn(ctx, in) }

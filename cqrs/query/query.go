// Package query defines handlers for read-only operations.
package query

import "context"

type (
	// Input represents the input type for a query.
	Input any

	// Result represents the result type for a query.
	Result any
)

// Query handles one kind of read-only operation.
type Query[I Input, R Result] interface {
	Execute(ctx context.Context, input I) (R, error)
}

// WrapFunc decorates a Query.
type WrapFunc[I Input, R Result] func(Query[I, R]) Query[I, R]

// Func adapts a plain function to the Query interface.
type Func[I Input, R Result] func(ctx context.Context, input I) (R, error)

// Execute implements Query.
func (f Func[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f(ctx, input)
}

// Wrap applies wrappers to q. The first wrapper ends up outermost.
func Wrap[I Input, R Result](q Query[I, R], wrappers ...WrapFunc[I, R]) Query[I, R] {
	for i := len(wrappers) - 1; i >= 0; i-- {
		q = wrappers[i](q)
	}
	return q
}

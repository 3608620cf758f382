// Package command defines handlers for operations that change state.
package command

import "context"

type (
	// Input represents the input type for a command.
	Input any

	// Result represents the result type for a command.
	Result any
)

// Command handles one kind of state changing operation.
type Command[I Input, R Result] interface {
	Execute(ctx context.Context, input I) (R, error)
}

// WrapFunc decorates a Command.
type WrapFunc[I Input, R Result] func(Command[I, R]) Command[I, R]

// Func adapts a plain function to the Command interface.
type Func[I Input, R Result] func(ctx context.Context, input I) (R, error)

// Execute implements Command.
func (f Func[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f(ctx, input)
}

// Wrap applies wrappers to cmd. The first wrapper ends up outermost.
func Wrap[I Input, R Result](cmd Command[I, R], wrappers ...WrapFunc[I, R]) Command[I, R] {
	for i := len(wrappers) - 1; i >= 0; i-- {
		cmd = wrappers[i](cmd)
	}
	return cmd
}

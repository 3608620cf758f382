package wrapper

import (
	"context"

	"github.com/rise-and-shine/catalog/cqrs/command"
	"github.com/rise-and-shine/catalog/meta"
	"github.com/rise-and-shine/catalog/observability/tracing"
)

type MetaInjectCommandWrapper[I command.Input, R command.Result] struct {
	operationID string
	next        command.Command[I, R]
}

// NewMetaInjectCommandWrapper puts the operation id and, when missing, a trace id
// into the context seen by downstream wrappers and the command itself.
func NewMetaInjectCommandWrapper[I command.Input, R command.Result](operationID string) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &MetaInjectCommandWrapper[I, R]{operationID: operationID, next: next}
	}
}

func (cmd *MetaInjectCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	data := map[meta.ContextKey]string{
		meta.OperationID: cmd.operationID,
	}
	if meta.Find(ctx, meta.TraceID) == "" {
		data[meta.TraceID] = tracing.GetStartingTraceID(ctx)
	}

	return cmd.next.Execute(meta.InjectMetaToContext(ctx, data), input)
}

package wrapper

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/cqrs/command"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TracingCommandWrapper[I command.Input, R command.Result] struct {
	tracer   trace.Tracer
	spanName string
	next     command.Command[I, R]
}

// NewTracingCommandWrapper opens a span named after the command for every execution.
func NewTracingCommandWrapper[I command.Input, R command.Result](cmdName string) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &TracingCommandWrapper[I, R]{
			tracer:   otel.Tracer("cqrs/command"),
			spanName: "command " + cmdName,
			next:     next,
		}
	}
}

func (t *TracingCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	ctx, span := t.tracer.Start(ctx, t.spanName)
	defer span.End()

	result, err := t.next.Execute(ctx, input)
	if err != nil {
		e := errx.AsErrorX(err)
		span.SetAttributes(
			attribute.String("error.code", e.Code()),
			attribute.String("error.type", e.Type().String()),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}

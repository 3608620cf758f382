package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// GetStartingTraceID returns the OpenTelemetry trace id of ctx. When tracing is
// disabled a random "man-" prefixed id is returned so logs can still be correlated.
func GetStartingTraceID(ctx context.Context) string {
	if traceID := trace.SpanFromContext(ctx).SpanContext().TraceID(); traceID.IsValid() {
		return traceID.String()
	}
	return "man-" + uuid.NewString()
}

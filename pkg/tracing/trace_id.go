package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// GetStartingTraceID returns the active trace ID from ctx. When the context
// carries no valid span, for example when tracing is disabled, it returns a
// generated identifier prefixed with "man-" so logs can still be correlated.
func GetStartingTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.TraceID().IsValid() {
		return sc.TraceID().String()
	}
	return "man-" + uuid.NewString()
}

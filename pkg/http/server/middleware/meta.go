package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
	"github.com/rise-and-shine/filedrop/pkg/meta"
	"go.opentelemetry.io/otel/trace"
)

// NewMetaInjectMW builds the middleware that stocks the request context with
// the metadata the rest of the chain reads back: trace id, caller addresses,
// user agent, referer, and the identity of this service. Values already
// placed in the context by earlier middleware stay as they are; empty request
// headers are left out entirely.
func NewMetaInjectMW(serviceName, serviceVersion string) server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			c.SetUserContext(meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:        requestTraceID(ctx),
				meta.IPAddress:      c.IP(),
				meta.UserAgent:      c.Get(fiber.HeaderUserAgent),
				meta.RemoteAddr:     c.Context().RemoteAddr().String(),
				meta.Referer:        c.Get(fiber.HeaderReferer),
				meta.ServiceName:    serviceName,
				meta.ServiceVersion: serviceVersion,
			}))

			return c.Next()
		},
	}
}

// requestTraceID resolves the trace id for the request. It prefers an id
// already injected by the tracing middleware, falls back to the active span,
// and mints a UUID when neither yields a usable value.
func requestTraceID(ctx context.Context) string {
	if id := meta.Find(ctx, meta.TraceID); id != "" {
		return id
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.TraceID().IsValid() {
		return sc.TraceID().String()
	}
	return uuid.NewString()
}

package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
	"github.com/rise-and-shine/filedrop/pkg/meta"
	"github.com/rise-and-shine/filedrop/pkg/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.23.1"
	"go.opentelemetry.io/otel/trace"
)

// traceIDHeader is the response header exposing the request trace id to
// callers.
const traceIDHeader = "X-Trace-ID"

// NewTracingMW builds the middleware that opens an OpenTelemetry server span
// per request. The span starts under a placeholder name because the route is
// only resolved after the chain runs; once it is, the span is renamed to
// "METHOD route" and annotated with the standard HTTP attributes. The trace
// id is echoed back in the X-Trace-ID header and seeded into the request
// context together with the caller's address and user agent, so downstream
// middleware and handlers log under the same id.
func NewTracingMW() server.Middleware {
	return server.Middleware{
		Priority: 900,
		Handler: func(c *fiber.Ctx) error {
			ctx, span := otel.Tracer("http-server").Start(
				c.UserContext(),
				fmt.Sprintf("%s /", c.Method()),
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			traceID := tracing.GetStartingTraceID(ctx)
			c.Set(traceIDHeader, traceID)
			c.SetUserContext(meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:   traceID,
				meta.IPAddress: c.IP(),
				meta.UserAgent: c.Get(fiber.HeaderUserAgent),
			}))

			err := c.Next()

			route := c.Route().Path
			if route != "" && route != "/" {
				span.SetName(fmt.Sprintf("%s %s", c.Method(), route))
			}
			span.SetAttributes(
				semconv.HTTPMethodKey.String(c.Method()),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPURLKey.String(c.OriginalURL()),
				semconv.HTTPStatusCodeKey.Int(c.Response().StatusCode()),
			)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return err
		},
	}
}

package middleware

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
	"github.com/rise-and-shine/filedrop/pkg/logger"
)

// NewLoggerMW builds the middleware that writes one structured log line per
// request. The line carries method, path, route, status, duration, and sizes;
// failed requests additionally carry the unpacked errx error. The level
// follows the response status: error for 5xx, warn for 4xx, info otherwise.
//
// The chain below is run through a local recover so that a panic past this
// point still produces a log line before the recovery middleware is reached.
func NewLoggerMW(log logger.Logger) server.Middleware {
	base := log.Named("middleware.logger")

	return server.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			start := time.Now()

			err := nextWithRecover(c)

			status := c.Response().StatusCode()

			entry := base.WithContext(ctx).
				With("http_status_code", status).
				With("http_schema", c.Protocol()).
				With("http_method", c.Method()).
				With("http_path", c.Path()).
				With("http_route", c.Route().Path).
				With("hostname", c.Hostname()).
				With("duration", time.Since(start)).
				With("query_params", c.Queries()).
				With("request_size", c.Request().Header.ContentLength())

			if err != nil {
				entry = entry.With("error", unpackError(err))
			}

			switch {
			case status >= fiber.StatusInternalServerError:
				entry.Error(err)
			case status >= fiber.StatusBadRequest:
				entry.Warn(err)
			default:
				entry.Info("request processed successfully")
			}

			return err
		},
	}
}

func unpackError(err error) map[string]any {
	e := errx.AsErrorX(err)
	return map[string]any{
		"code":    e.Code(),
		"message": e.Error(),
		"type":    e.Type().String(),
		"trace":   e.Trace(),
		"fields":  e.Fields(),
		"details": e.Details(),
	}
}

// nextWithRecover runs the remaining chain, converting a panic into an error
// so the request still gets its log line.
func nextWithRecover(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errx.New(
				"panic recovered at logger middleware",
				errx.WithDetails(errx.D{
					"stack_trace":   captureStack(),
					"panic_message": r,
				}),
			)
		}
	}()

	return c.Next()
}

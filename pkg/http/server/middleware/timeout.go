package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
)

// NewTimeoutMW builds the middleware that caps how long a request context
// stays alive. Downstream work that honors context cancellation aborts once
// the deadline passes; handlers that ignore the context are not interrupted.
func NewTimeoutMW(limit time.Duration) server.Middleware {
	return server.Middleware{
		Priority: 800,
		Handler: func(c *fiber.Ctx) error {
			ctx, cancel := context.WithTimeout(c.UserContext(), limit)
			defer cancel()

			c.SetUserContext(ctx)
			return c.Next()
		},
	}
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
)

// NewErrorHandlerMW builds the innermost middleware of the chain. Errors
// returned by handlers are rendered into the standard JSON error envelope;
// responses that already carry an error status are left untouched. With
// hideDetails set, the trace and detail sections are stripped from the body.
func NewErrorHandlerMW(hideDetails bool) server.Middleware {
	return server.Middleware{
		Priority: 400,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err == nil {
				return nil
			}

			if c.Response() != nil && c.Response().StatusCode() >= fiber.StatusBadRequest {
				return err
			}

			return server.WriteErrorResponse(c, err, hideDetails)
		},
	}
}

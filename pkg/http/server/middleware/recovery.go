package middleware

import (
	"runtime"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
	"github.com/rise-and-shine/filedrop/pkg/logger"
)

// stackBufSize bounds the stack trace captured on panic.
const stackBufSize = 4 << 10

// NewRecoveryMW builds the outermost middleware of the chain. It converts
// panics raised anywhere downstream into errx errors carrying the panic
// message and stack trace, logging them before the error middleware turns
// them into a response.
func NewRecoveryMW(log logger.Logger) server.Middleware {
	base := log.Named("middleware.recovery")

	return server.Middleware{
		Priority: 1000,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				stack := captureStack()

				base.WithContext(c.UserContext()).
					With("stack_trace", stack).
					With("panic_message", r).
					Error("recovered from panic")

				err = errx.New("panic recovered", errx.WithDetails(errx.D{
					"stack_trace":   stack,
					"panic_message": r,
				}))
			}()

			return c.Next()
		},
	}
}

func captureStack() string {
	buf := make([]byte, stackBufSize)
	return string(buf[:runtime.Stack(buf, false)])
}

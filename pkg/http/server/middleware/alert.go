package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/filedrop/pkg/alert"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
	"github.com/rise-and-shine/filedrop/pkg/logger"
	"github.com/rise-and-shine/filedrop/pkg/meta"
)

// alertSendTimeout bounds the background delivery of a single alert.
const alertSendTimeout = 3 * time.Second

// NewAlertingMW builds the middleware that reports internal failures to the
// global alert provider. Errors of any other errx type pass through silently.
// Delivery happens in a detached goroutine with its own deadline so a slow
// notifier never holds up the response.
func NewAlertingMW() server.Middleware {
	return server.Middleware{
		Priority: 600,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			err := c.Next()
			if err == nil {
				return nil
			}

			e := errx.AsErrorX(err)
			if e.Type() != errx.T_Internal {
				return err
			}

			operation := fmt.Sprintf("%s %s", c.Method(), c.Route().Path)
			details := alertDetails(ctx, e)

			sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertSendTimeout)
			go func() {
				defer cancel()

				if sendErr := alert.SendError(sendCtx, e.Code(), e.Error(), operation, details); sendErr != nil {
					logger.Named("http.alerting").
						WithContext(ctx).
						With("alert_send_error", sendErr.Error()).
						Warn("failed to send alert")
				}
			}()

			return err
		},
	}
}

// alertDetails merges the error trace with every metadata entry present in
// the request context.
func alertDetails(ctx context.Context, e errx.ErrorX) map[string]string {
	details := map[string]string{
		"error_trace": e.Trace(),
	}
	for k, v := range meta.ExtractMetaFromContext(ctx) {
		details[string(k)] = v
	}
	return details
}

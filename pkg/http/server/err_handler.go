package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/filedrop/pkg/meta"
)

// codeRouterError marks errors raised by the router itself, such as
// unmatched routes or oversized bodies.
const codeRouterError = "ROUTER_ERROR"

// errorSchema is the error object embedded in every error response.
type errorSchema struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

// WriteErrorResponse renders err as the standard JSON error envelope and
// sets the HTTP status derived from the error type. It returns the
// normalized errx error for further handling.
func WriteErrorResponse(c *fiber.Ctx, err error, hideDetails bool) error {
	e := toErrorX(err)

	c.Status(httpStatusFor(e.Type()))
	_ = c.JSON(map[string]any{
		"trace_id": c.UserContext().Value(meta.TraceID),
		"error":    newErrorSchema(e, hideDetails),
	})

	return e
}

// newFiberErrorHandler adapts WriteErrorResponse to Fiber's error hook.
// Responses that already carry an error status are left untouched.
func newFiberErrorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if resp := c.Response(); resp != nil && resp.StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		_ = WriteErrorResponse(c, err, hideDetails)
		return nil
	}
}

// newErrorSchema shapes an errx error for the response body. Trace and
// details are included only when hideDetails is false.
func newErrorSchema(e errx.ErrorX, hideDetails bool) errorSchema {
	schema := errorSchema{
		Code:    e.Code(),
		Message: e.Error(),
		Fields:  e.Fields(),
	}
	if !hideDetails {
		schema.Trace = e.Trace()
		schema.Details = e.Details()
	}
	return schema
}

// httpStatusFor maps an errx type to its HTTP status code.
func httpStatusFor(t errx.Type) int {
	switch t {
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_NotFound:
		return fiber.StatusNotFound
	case errx.T_Validation:
		return fiber.StatusBadRequest
	case errx.T_Conflict:
		return fiber.StatusConflict
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	case errx.T_Internal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

//nolint:gochecknoglobals // static status-to-type lookup
var fiberStatusTypes = map[int]errx.Type{
	fiber.StatusUnauthorized:    errx.T_Authentication,
	fiber.StatusForbidden:       errx.T_Forbidden,
	fiber.StatusNotFound:        errx.T_NotFound,
	fiber.StatusConflict:        errx.T_Conflict,
	fiber.StatusTooManyRequests: errx.T_Throttling,
}

// toErrorX normalizes any error to an errx.ErrorX. Fiber errors are
// converted with their status code mapped to the matching error type.
func toErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return errx.AsErrorX(err)
	}

	t, ok := fiberStatusTypes[fiberErr.Code]
	if !ok {
		if fiberErr.Code >= fiber.StatusBadRequest && fiberErr.Code < fiber.StatusInternalServerError {
			t = errx.T_Validation
		} else {
			t = errx.T_Internal
		}
	}

	return errx.AsErrorX(errx.New(
		fiberErr.Message,
		errx.WithCode(codeRouterError),
		errx.WithType(t),
		errx.WithDetails(errx.D{
			"fiber_code": fiberErr.Code,
			"fiber_msg":  fiberErr.Message,
		}),
	))
}

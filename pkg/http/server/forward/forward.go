// Package forward bridges HTTP requests to use case implementations.
package forward

import (
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/filedrop/pkg/logger"
	"github.com/rise-and-shine/filedrop/pkg/mask"
	"github.com/rise-and-shine/filedrop/pkg/ucdef"
	"github.com/rise-and-shine/filedrop/pkg/val"
)

// maxLoggedBodySize caps how many bytes of a request or response body are
// reproduced in log entries.
const maxLoggedBodySize = 8 << 10

// ToUserAction adapts a use case into a Fiber handler. The handler decodes
// the input I from the request, validates it against its validate tags,
// executes the use case and serializes the output O as JSON.
//
// I must be a pointer to a struct.
func ToUserAction[I, O any](uc ucdef.UserAction[I, O]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := decodeRequest[I](c)
		if err != nil {
			return errx.Wrap(err)
		}

		log := logger.
			Named("http.handler").
			WithContext(c.UserContext()).
			With("operation_id", uc.OperationID()).
			With("request_body", bodyField(len(c.Body()), func() any {
				return mask.StructToOrdMap(req)
			}))

		if err := val.ValidateSchema(req); err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		resp, err := uc.Execute(c.UserContext(), req)
		if err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		size, err := writeJSON(c, resp)
		if err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		log.With("response_body", bodyField(size, func() any {
			return mask.StructToOrdMap(resp)
		})).Debug("")

		return nil
	}
}

// decodeRequest allocates the input struct and fills it from the request.
// GET inputs come from query parameters, POST inputs from the JSON body.
func decodeRequest[I any](c *fiber.Ctx) (I, error) {
	req, err := newInput[I]()
	if err != nil {
		return req, errx.Wrap(err)
	}

	switch c.Method() {
	case fiber.MethodGet:
		err = fillFromQuery(c, req)
	case fiber.MethodPost:
		err = fillFromBody(c, req)
	default:
		err = errx.New(
			"unsupported http method: allowed only GET and POST",
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidHTTPMethod),
			errx.WithDetails(errx.D{
				"received_http_method": c.Method(),
			}),
		)
	}
	if err != nil {
		return req, errx.Wrap(err)
	}

	return req, nil
}

// newInput instantiates I, enforcing that it is a pointer to a struct.
func newInput[I any]() (I, error) {
	var zero I

	inputType := reflect.TypeOf((*I)(nil)).Elem()
	if inputType.Kind() != reflect.Pointer || inputType.Elem().Kind() != reflect.Struct {
		return zero, errx.New("input type I must be a pointer to a struct")
	}

	req, ok := reflect.New(inputType.Elem()).Interface().(I)
	if !ok {
		return zero, errx.New("input type I must be a pointer to a struct")
	}
	return req, nil
}

// bodyField returns the rendered body when it is small enough to log,
// otherwise a placeholder naming its size.
func bodyField(size int, render func() any) any {
	if size > maxLoggedBodySize {
		return fmt.Sprintf("too large for logging: %d bytes", size)
	}
	return render()
}

// writeJSON serializes data with the application's JSON encoder and returns
// the number of bytes written.
func writeJSON(c *fiber.Ctx, data any) (int, error) {
	raw, err := c.App().Config().JSONEncoder(data)
	if err != nil {
		return 0, errx.Wrap(err)
	}

	c.Response().SetBodyRaw(raw)
	c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
	return len(raw), nil
}

// Package val provides schema validation on top of go-playground/validator.
package val

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // one validator instance is shared across all requests
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldDisplayName)
	return v
}

// fieldDisplayName resolves the name reported for a failed field.
// The json tag wins, then the query tag, then the Go field name.
func fieldDisplayName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

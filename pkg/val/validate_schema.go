package val

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

// CodeValidationFailed is the error code attached to every validation failure.
const CodeValidationFailed = "VALIDATION_FAILED"

//nolint:gochecknoglobals // static message catalog for parameterless rules
var plainRuleMessages = map[string]string{
	"required": "This field is required",
	"alpha":    "Must contain only alphabetic characters",
	"alphanum": "Must contain only alphanumeric characters",
	"numeric":  "Must be a valid number",
	"url":      "Must be a valid URL",
	"uuid":     "Must be a valid UUID",
	"hostname": "Must be a valid hostname",
	"ip":       "Must be a valid IP address",
}

// ValidateSchema checks schema against its validate tags and converts
// failures into a single errx error carrying per-field messages.
func ValidateSchema(schema any) error {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errx.New(
			fmt.Sprintf("Unknown validation error: %s", err.Error()),
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation),
		)
	}

	fields := make(errx.M, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = ruleMessage(fe)
	}

	return errx.New(
		"Validation failed. See fields for details.",
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
		errx.WithFields(fields),
	)
}

// ruleMessage renders a human-readable description for one failed rule.
func ruleMessage(fe validator.FieldError) string {
	if msg, ok := plainRuleMessages[fe.Tag()]; ok {
		return msg
	}

	param := fe.Param()
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "len":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be exactly %s characters", param)
		}
		return fmt.Sprintf("Must have exactly %s items", param)
	case "gt":
		return fmt.Sprintf("Must be greater than %s", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lt":
		return fmt.Sprintf("Must be less than %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "startswith":
		return fmt.Sprintf("Must start with: %s", param)
	case "endswith":
		return fmt.Sprintf("Must end with: %s", param)
	case "excludes":
		return fmt.Sprintf("Must not contain: %s", param)
	}

	return fmt.Sprintf("Failed validation: %s", fe.Tag())
}

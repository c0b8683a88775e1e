// Package mask redacts sensitive struct fields for safe logging output.
package mask

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// tagName marks fields whose values must not reach logs in clear text.
const tagName = "mask"

// nameTags are consulted in order when resolving a field's display name.
//
//nolint:gochecknoglobals // static lookup order
var nameTags = [...]string{"json", "yaml"}

// StructToOrdMap flattens a struct into an ordered map suitable for logging.
// Entries follow struct declaration order. Fields tagged `mask:"true"` are
// replaced with redaction placeholders, nested structs are flattened using
// dot-separated names, and fields tagged json:"-" or yaml:"-" are dropped.
// Returns nil when v is nil.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}

	out := orderedmap.New[string, any]()
	flatten(out, reflect.ValueOf(v), "")
	return out
}

// flatten writes the fields of val into out under the given name prefix.
func flatten(out *orderedmap.OrderedMap[string, any], val reflect.Value, prefix string) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			out.Set(prefix, nil)
			return
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		out.Set(prefix, val.Interface())
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		label, excluded := fieldLabel(field)
		if excluded {
			continue
		}
		if prefix != "" {
			label = prefix + "." + label
		}

		value := val.Field(i)
		switch {
		case strings.EqualFold(field.Tag.Get(tagName), "true"):
			out.Set(label, redact(value))
		case expandable(value):
			flatten(out, value, label)
		default:
			out.Set(label, value.Interface())
		}
	}
}

// expandable reports whether value is a struct, or a non-nil pointer to one,
// that should be flattened rather than emitted as a single entry.
func expandable(value reflect.Value) bool {
	kind := value.Kind()
	if kind == reflect.Pointer {
		if value.IsNil() {
			return false
		}
		kind = value.Elem().Kind()
	}
	return kind == reflect.Struct
}

// redact converts a sensitive value into a placeholder. Nil pointers, slices
// and maps come out as nil. Zero values pass through unmasked so that unset
// fields remain recognizable in logs.
func redact(value reflect.Value) any {
	switch value.Kind() { //nolint:exhaustive // remaining kinds need no nil handling
	case reflect.Pointer:
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	case reflect.Slice, reflect.Map:
		if value.IsNil() {
			return nil
		}
	}

	if value.IsZero() {
		return value.Interface()
	}

	return placeholder(value.Kind())
}

func placeholder(kind reflect.Kind) string {
	switch kind { //nolint:exhaustive // fallback covers the remaining kinds
	case reflect.String:
		return "***masked-string***"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "***masked-int***"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "***masked-uint***"
	case reflect.Float32, reflect.Float64:
		return "***masked-float***"
	case reflect.Bool:
		return "***masked-bool***"
	case reflect.Struct:
		return "***masked-struct***"
	case reflect.Slice, reflect.Array:
		return "***masked-slice***"
	case reflect.Map:
		return "***masked-map***"
	default:
		return fmt.Sprintf("***masked-%s***", kind)
	}
}

// fieldLabel resolves the display name for a struct field, preferring the
// json tag, then yaml, then the Go field name. The second return is true
// when the field is excluded with a "-" tag.
func fieldLabel(field reflect.StructField) (string, bool) {
	for _, tag := range nameTags {
		raw, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if raw == "-" {
			return "", true
		}
		if idx := strings.IndexByte(raw, ','); idx >= 0 {
			raw = raw[:idx]
		}
		if raw != "" {
			return raw, false
		}
	}
	return field.Name, false
}

package cfgloader

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// logLoadedConfig logs the effective configuration as YAML with fields
// tagged `mask:"true"` redacted.
func logLoadedConfig(cfg any) {
	val := reflect.ValueOf(cfg)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	out, err := yaml.Marshal(redactValue(val).Interface())
	if err != nil {
		slog.Error("failed to marshal config", "error", err.Error())
		return
	}
	slog.Info(fmt.Sprintf("Loaded config:\n%s", out))
}

// redactValue deep-copies val, replacing the contents of mask-tagged fields.
func redactValue(val reflect.Value) reflect.Value {
	if !val.IsValid() {
		return val
	}

	switch val.Kind() { //nolint:exhaustive // remaining kinds are copied as-is
	case reflect.Pointer:
		if val.IsNil() {
			return val
		}
		out := reflect.New(val.Elem().Type())
		out.Elem().Set(redactValue(val.Elem()))
		return out

	case reflect.Interface:
		if val.IsNil() {
			return val
		}
		return redactValue(val.Elem())

	case reflect.Struct:
		out := reflect.New(val.Type()).Elem()
		for i := range val.NumField() {
			field := val.Field(i)
			if !out.Field(i).CanSet() || !field.CanInterface() {
				continue
			}

			if val.Type().Field(i).Tag.Get("mask") == "true" {
				out.Field(i).Set(redactLeaf(field))
			} else {
				out.Field(i).Set(redactValue(field))
			}
		}
		return out

	default:
		return val
	}
}

// redactLeaf blanks a single mask-tagged value. Strings keep their length,
// other scalars become their zero value, containers are recursed into.
func redactLeaf(val reflect.Value) reflect.Value {
	if !val.IsValid() {
		return val
	}

	switch val.Kind() { //nolint:exhaustive // scalar kinds fall through to zeroing
	case reflect.String:
		masked := strings.Repeat("*", val.Len())
		return reflect.ValueOf(masked).Convert(val.Type())

	case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map, reflect.Interface, reflect.Pointer:
		return redactValue(val)

	default:
		return reflect.Zero(val.Type())
	}
}

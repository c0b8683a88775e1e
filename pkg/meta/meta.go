// Package meta carries request-scoped metadata through context values.
package meta

import (
	"context"
	"fmt"

	"github.com/code19m/errx"
)

// ContextKey identifies a single metadata entry stored in a context.
type ContextKey string

// Keys recognized by the inject/extract round trip.
const (
	// TraceID correlates log lines and spans belonging to one request.
	TraceID ContextKey = "trace_id"

	// IPAddress holds the originating client address.
	IPAddress ContextKey = "ip_address"

	// UserAgent holds the User-Agent header of the request.
	UserAgent ContextKey = "user_agent"

	// RemoteAddr holds the peer address the connection came from.
	RemoteAddr ContextKey = "remote_addr"

	// Referer holds the Referer header of the request.
	Referer ContextKey = "referer"

	// ServiceName names the service handling the request.
	ServiceName ContextKey = "service_name"

	// ServiceVersion is the build version of the handling service.
	ServiceVersion ContextKey = "service_version"
)

//nolint:gochecknoglobals // fixed key set shared by extraction helpers
var knownKeys = [...]ContextKey{
	TraceID,
	IPAddress,
	UserAgent,
	RemoteAddr,
	Referer,
	ServiceName,
	ServiceVersion,
}

// InjectMetaToContext stores every non-empty value from data in the context
// and returns the derived context. Entries with empty values are skipped.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for key, value := range data {
		if value == "" {
			continue
		}
		ctx = context.WithValue(ctx, key, value) //nolint:fatcontext // bounded by the known key set
	}
	return ctx
}

// ExtractMetaFromContext collects the known metadata keys present in the
// context. Keys holding empty or non-string values are omitted.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	out := make(map[ContextKey]string, len(knownKeys))
	for _, key := range knownKeys {
		if value, ok := ctx.Value(key).(string); ok && value != "" {
			out[key] = value
		}
	}
	return out
}

// Find returns the value stored under key, or an empty string when the key
// is absent or holds a non-string value.
func Find(ctx context.Context, key ContextKey) string {
	value, _ := ctx.Value(key).(string)
	return value
}

// ShouldGetMeta returns the value stored under key. It fails when the key
// is absent or holds a non-string value.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New(fmt.Sprintf("meta: key not found in context: %s", key))
	}

	value, ok := raw.(string)
	if !ok {
		return "", errx.New(fmt.Sprintf("meta: type mismatch for key: %s", key))
	}

	return value, nil
}

// Package ucdef holds the use case contracts shared across the application.
package ucdef

import "context"

// UserAction is a synchronous business operation triggered by an incoming
// request. The transport layer decodes and validates the input I, calls
// Execute, and serializes the output O back to the caller. Errors are
// returned directly to the user as the transport's error response.
type UserAction[I, O any] interface {
	// OperationID uniquely names the operation for logging, tracing
	// and alerting.
	OperationID() string

	// Execute runs the operation.
	Execute(ctx context.Context, in I) (O, error)
}

// Package usecase contains the business operations of the file drop
// service: accepting uploads, listing stored files and reporting health.
package usecase

import "time"

// Option configures optional behavior of a use case.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the wall clock used by time-dependent use cases.
// Tests inject a fixed clock to make derived names and timestamps
// deterministic.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

package server

import (
	"fmt"
	"time"
)

// Config holds the server's listen address, timeouts and body cap.
type Config struct {
	// Host is the address the server binds to.
	Host string `yaml:"host" validate:"required"`

	// Port is the port the server listens on.
	Port int `yaml:"port" validate:"required"`

	// HideErrorDetails strips traces and internal details from error
	// responses. Enable it in production.
	HideErrorDetails bool `yaml:"hide_error_details"`

	// ReadTimeout bounds reading of the full request, body included.
	// Default is 5 seconds.
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"required" default:"5s"`

	// WriteTimeout bounds writing of the response. Default is 5 seconds.
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"required" default:"5s"`

	// IdleTimeout is how long a keep-alive connection may sit idle.
	// Default is 120 seconds.
	IdleTimeout time.Duration `yaml:"idle_timeout" validate:"required" default:"120s"`

	// HandleTimeout bounds the handling of a single request.
	// Default is 10 seconds.
	HandleTimeout time.Duration `yaml:"request_timeout" validate:"required" default:"10s"`

	// BodyLimit is the maximum accepted request body size in bytes.
	// Default is 4MB.
	BodyLimit int `yaml:"body_limit" validate:"required" default:"4194304"`
}

// Address returns the listen address in "host:port" form.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Package config defines the filedrop service configuration.
//
// Configuration is loaded from ./config/${ENVIRONMENT}.yaml via cfgloader,
// which applies defaults and validates the result at startup.
package config

import (
	"github.com/rise-and-shine/filedrop/pkg/alert"
	"github.com/rise-and-shine/filedrop/pkg/filestore/diskwr"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
	"github.com/rise-and-shine/filedrop/pkg/logger"
	"github.com/rise-and-shine/filedrop/pkg/tracing"
)

// Config is the root configuration for the filedrop service.
type Config struct {
	Service    ServiceConfig  `yaml:"service"`
	HTTPServer server.Config  `yaml:"http_server"`
	Logger     logger.Config  `yaml:"logger"`
	Tracing    tracing.Config `yaml:"tracing"`
	Alert      alert.Config   `yaml:"alert"`
	Storage    diskwr.Config  `yaml:"storage"`
	Intake     IntakeConfig   `yaml:"intake"`
}

// ServiceConfig identifies the service instance.
type ServiceConfig struct {
	// Name is the service name used in logs, traces and alerts.
	Name string `yaml:"name" validate:"required"`

	// Version is the running service version. Usually injected at deploy time.
	Version string `yaml:"version" validate:"required" default:"unknown"`
}

// IntakeConfig holds the upload acceptance policy.
type IntakeConfig struct {
	// MaxSizeBytes is the maximum accepted file size in bytes. Default is 16MB.
	//
	// Note that http_server.body_limit must be larger than this value,
	// otherwise oversized multipart bodies are rejected by the server
	// before the policy can produce a proper FILE_TOO_LARGE error.
	MaxSizeBytes int64 `yaml:"max_size_bytes" validate:"required,gt=0" default:"16777216"`

	// AllowedExtensions is the list of accepted file extensions, without
	// the leading dot. Matching is case-insensitive.
	AllowedExtensions []string `yaml:"allowed_extensions" validate:"required,min=1"`
}

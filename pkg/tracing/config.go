package tracing

import "time"

// Export pipeline tuning.
const (
	reconnectionPeriod = 30 * time.Second
	batchTimeout       = 30 * time.Second
	shutdownTimeout    = 5 * time.Second
	maxQueueSize       = 10000
	maxExportBatchSize = 1024
)

// Config holds tracing settings, typically loaded from a YAML file.
type Config struct {
	// Disable turns tracing off entirely. No spans are collected or exported.
	Disable bool `yaml:"disable" default:"false"`

	// SampleRate is the fraction of traces to sample, from 0.0 (none)
	// to 1.0 (all). A value of 0.1 samples 10% of traces.
	SampleRate float64 `yaml:"sample_rate" default:"1"`

	// ExporterHost is the hostname or IP of the OTLP collector.
	ExporterHost string `yaml:"exporter_host" validate:"required_unless=Disable true"`

	// ExporterPort is the port of the OTLP collector.
	ExporterPort int `yaml:"exporter_port" validate:"required_unless=Disable true"`

	// Tags are added as resource attributes to every exported span.
	Tags map[string]string `yaml:"tags"`
}

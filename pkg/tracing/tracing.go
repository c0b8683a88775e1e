// Package tracing wires OpenTelemetry tracing with an OTLP/gRPC exporter.
package tracing

import (
	"context"
	"net"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.23.1"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/rise-and-shine/filedrop/pkg/meta"
)

// InitGlobalTracer installs the global OpenTelemetry tracer provider and
// returns a shutdown function that flushes and stops span export. Call the
// shutdown function on application exit.
//
// With cfg.Disable set, a no-op provider is installed and the returned
// shutdown function does nothing.
func InitGlobalTracer(cfg Config) (func() error, error) {
	if cfg.Disable {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func() error { return nil }, nil
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRate))),
		trace.WithSpanProcessor(trace.NewBatchSpanProcessor(
			exporter,
			trace.WithMaxQueueSize(maxQueueSize),
			trace.WithBatchTimeout(batchTimeout),
			trace.WithMaxExportBatchSize(maxExportBatchSize),
		)),
		trace.WithResource(newResource(cfg.Tags)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)

	return func() error { return stopProvider(tp) }, nil
}

func newExporter(cfg Config) (*otlptrace.Exporter, error) {
	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(net.JoinHostPort(cfg.ExporterHost, cast.ToString(cfg.ExporterPort))),
		otlptracegrpc.WithReconnectionPeriod(reconnectionPeriod),
	)
	return otlptrace.New(context.Background(), client)
}

// newResource describes this service instance in every exported span.
func newResource(tags map[string]string) *resource.Resource {
	name, version := meta.ServiceInfo()

	attrs := make([]attribute.KeyValue, 0, len(tags)+2)
	for k, v := range tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	attrs = append(attrs,
		semconv.ServiceNameKey.String(name),
		semconv.ServiceVersionKey.String(version),
	)

	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// stopProvider flushes buffered spans and shuts the provider down.
func stopProvider(tp *trace.TracerProvider) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := tp.ForceFlush(ctx); err != nil {
		return errx.Wrap(err)
	}
	return errx.Wrap(tp.Shutdown(ctx))
}

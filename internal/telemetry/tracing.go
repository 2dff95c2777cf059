// Package telemetry wraps benchmark runs in OpenTelemetry spans and can
// export them as JSON.
package telemetry

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies the tracer used by the application.
const InstrumentationName = "github.com/agbru/workdist"

// Attribute keys recorded on run spans.
const (
	KeyStrategy   = attribute.Key("workdist.strategy")
	KeyPositions  = attribute.Key("workdist.positions")
	KeyThreads    = attribute.Key("workdist.threads")
	KeyElapsedMs  = attribute.Key("workdist.elapsed_ms")
	KeyCPUPercent = attribute.Key("workdist.cpu_percent")
	KeyMemPercent = attribute.Key("workdist.mem_percent")
	KeyMismatches = attribute.Key("workdist.mismatches")
)

// Tracer returns the application tracer from the global provider. Without a
// call to Setup this is a no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Setup installs a global tracer provider that writes every finished span
// to w as JSON. The returned function flushes and shuts the provider down.
func Setup(w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// StartRun opens a span around one strategy run.
func StartRun(ctx context.Context, tracer trace.Tracer, strategy string, positions, threads int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "run "+strategy, trace.WithAttributes(
		KeyStrategy.String(strategy),
		KeyPositions.Int(positions),
		KeyThreads.Int(threads),
	))
}

// EndRun records the run window's elapsed time and resource usage on its
// span and ends it.
func EndRun(span trace.Span, elapsed time.Duration, cpuPercent, memPercent float64) {
	span.SetAttributes(
		KeyElapsedMs.Int64(elapsed.Milliseconds()),
		KeyCPUPercent.Float64(cpuPercent),
		KeyMemPercent.Float64(memPercent),
	)
	span.End()
}

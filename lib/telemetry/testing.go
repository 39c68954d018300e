package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// SetupForTesting installs a tracer provider that keeps finished spans in
// memory, the returned recorder can be used to assert on them. the previous
// global provider is restored when the test ends.
func SetupForTesting(t testing.TB) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		err := provider.Shutdown(context.Background())
		if err != nil {
			t.Error(err)
		}
	})

	return recorder
}

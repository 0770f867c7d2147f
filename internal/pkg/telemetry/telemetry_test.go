package telemetry

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestResource(t *testing.T) {
	res, err := Resource(Config{ServiceName: "catalog-service", Environment: "test"})
	require.NoError(t, err)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "catalog-service", attrs["service.name"])
	assert.Equal(t, "test", attrs["deployment.environment"])
}

func TestPropagator_RoundTrip(t *testing.T) {
	header := http.Header{}
	header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	ctx := Propagator().Extract(context.Background(), propagation.HeaderCarrier(header))
	sc := trace.SpanContextFromContext(ctx)
	require.True(t, sc.IsValid())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", sc.TraceID().String())

	out := http.Header{}
	Propagator().Inject(ctx, propagation.HeaderCarrier(out))
	assert.Equal(t, header.Get("traceparent"), out.Get("traceparent"))
}

func TestInit_InstallsGlobalProvider(t *testing.T) {
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	otel.SetTracerProvider(noop.NewTracerProvider())

	// the exporter connects lazily, so no collector is needed
	shutdown, err := Init(context.Background(), Config{
		ServiceName:  "catalog-service",
		Environment:  "test",
		OTLPEndpoint: "127.0.0.1:4317",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = shutdown(ctx)
	})

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

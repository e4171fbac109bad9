package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/paoquentinho/storefront/pkg/config"
)

func TestInitNoneKeepsNoopProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	shutdown, err := Init(context.Background(), config.TracingConfig{Exporter: "none"}, Options{ServiceName: "api"}, nil)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitStdoutExportsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	buf := &bytes.Buffer{}
	shutdown, err := Init(context.Background(),
		config.TracingConfig{Exporter: "stdout", SampleRatio: 1},
		Options{ServiceName: "api", Environment: "dev", StdoutTo: buf}, nil)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "checkout")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"checkout"`)
}

func TestInitRejectsUnknownExporter(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{Exporter: "zipkin"}, Options{}, nil)
	require.Error(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: "test",
		Environment:    "test",
		TraceExporter:  "stdout",
		MetricExporter: "prometheus",
		SampleRatio:    1,
	}, testLogger())
	require.NoError(t, err)

	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitialization_Disabled(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{TraceExporter: "none", MetricExporter: "none"}, testLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Tracer, "no-op tracer is always set")
	assert.NotNil(t, providers.Meter, "no-op meter is always set")

	_, err = CreateMetrics(providers.Meter)
	assert.NoError(t, err)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelInitialization_UnknownExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{TraceExporter: "zipkin"}, testLogger())
	assert.Error(t, err)

	_, err = InitializeOTel(&OTelConfig{MetricExporter: "statsd"}, testLogger())
	assert.Error(t, err)
}

func TestPrometheusEndpointExposesMetrics(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.SceneBuildsTotal.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gantt_scene_builds_total")
}

func TestRecordErrorAndTraceID(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))

	RecordError(ctx, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)

	assert.Empty(t, TraceIDFromContext(context.Background()))
}

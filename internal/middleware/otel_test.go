package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Kirankkt/Complex-gannt/internal/infrastructure"
	"github.com/Kirankkt/Complex-gannt/internal/shared/testutil"
)

func TestOTelMiddleware(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)).Tracer("test")

	reader := sdkmetric.NewManualReader()
	metrics, err := infrastructure.CreateMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	require.NoError(t, err)

	logger, _ := testutil.NewTestLogger(t)
	otelMW := NewOTelMiddleware(tracer, metrics, logger)

	var traceID string
	r := chi.NewRouter()
	r.Use(otelMW.Handler)
	r.Get("/api/gantt/{view}", func(w http.ResponseWriter, r *http.Request) {
		traceID = infrastructure.GetTraceID(r.Context())
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gantt/scene", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "GET /api/gantt/{view}", span.Name())
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
	assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", http.StatusInternalServerError))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var requests int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http_requests_total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				route, _ := dp.Attributes.Value("route")
				assert.Equal(t, "/api/gantt/{view}", route.AsString())
				requests += dp.Value
			}
		}
	}
	assert.Equal(t, int64(1), requests)
}

func TestGetRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", GetRealIP(req))

	req.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", GetRealIP(req))

	req.Header.Set("X-Forwarded-For", "10.0.0.3")
	assert.Equal(t, "10.0.0.3", GetRealIP(req))
}

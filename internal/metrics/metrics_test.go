package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/metrics"
)

func TestHandler_ExposesCollectors(t *testing.T) {
	m := metrics.New()
	m.HTTPRequests.WithLabelValues("GET", "/healthz", "200").Inc()
	m.GatewayFailures.WithLabelValues("coordinates").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tripplanner_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, string(body), `tripplanner_gateway_lookup_failures_total{strategy="coordinates"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New()
		metrics.New()
	})
}

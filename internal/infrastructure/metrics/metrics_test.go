package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationCounters(t *testing.T) {
	m := New()

	m.OrderCreated()
	m.DonationSucceeded(50000, false)
	m.DonationSucceeded(25000, true)
	m.SignatureMismatch()
	m.VerificationConflict()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.verifications.WithLabelValues(resultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verifications.WithLabelValues(resultMismatch)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verifications.WithLabelValues(resultConflict)))
	assert.Equal(t, 75000.0, testutil.ToFloat64(m.donatedMinorUnits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.poolTargetsReached))
}

func TestHandlerExposesHTTPMetrics(t *testing.T) {
	m := New()
	m.RequestStarted()
	m.RequestFinished("GET", "/api/v1/pools/:id", "200", 0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `labpool_http_requests_total{method="GET",path="/api/v1/pools/:id",status="200"} 1`))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

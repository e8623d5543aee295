package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCounters(t *testing.T) {
	p := NewPrometheus()

	p.PurchaseOutcome("success")
	p.PurchaseOutcome("success")
	p.PurchaseOutcome("conflict")
	p.Expired(3)
	p.Expired(0)
	p.RankingCache(true)
	p.RankingCache(false)
	p.RankingCache(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.purchases.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.purchases.WithLabelValues("conflict")))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.expirations))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.rankingCache.WithLabelValues("miss")))
}

func TestPrometheusHandler(t *testing.T) {
	p := NewPrometheus()
	p.Compensation()
	p.SweepDuration(20 * time.Millisecond)
	p.ObserveHTTP("/api/v1/boosts/purchase", http.MethodPost, http.StatusCreated, time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "boost_compensations_total 1"))
	assert.True(t, strings.Contains(body, "boost_sweep_duration_seconds_count 1"))
	assert.True(t, strings.Contains(body, `boost_http_requests_total{method="POST",route="/api/v1/boosts/purchase",status="201"} 1`))
}

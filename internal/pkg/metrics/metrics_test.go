package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTP(t *testing.T) {
	m := New()

	m.ObserveHTTP("GET", "/api/v1/item", "200", 10*time.Millisecond)
	m.ObserveHTTP("GET", "/api/v1/item", "200", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/item", "200")))
}

func TestObserveStore(t *testing.T) {
	m := New()

	m.ObserveStore("items", "find_by_id", "not_found", time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("items", "find_by_id", "not_found")))
}

func TestTrackInFlight(t *testing.T) {
	m := New()

	done := m.TrackInFlight()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveStore("accounts", "count", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog_store_operations_total")
}

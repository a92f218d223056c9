package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/leads/{id}", "418"))

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/leads/{id}", "418"))
	assert.Equal(t, 3.0, after-before)
}

func TestMetricsUnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, after-before)
}

func TestSinkMetrics(t *testing.T) {
	success := leadSyncAttempts.WithLabelValues("sheets", "success")
	failure := leadSyncAttempts.WithLabelValues("sheets", "failure")
	beforeSuccess, beforeFailure := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	var m SinkMetrics
	m.ObserveSinkAttempt("sheets", "success", 120*time.Millisecond)
	m.ObserveSinkAttempt("sheets", "failure", 10*time.Second)
	m.ObserveSinkAttempt("sheets", "failure", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(success)-beforeSuccess)
	assert.Equal(t, 2.0, testutil.ToFloat64(failure)-beforeFailure)
}

func TestRecordCounters(t *testing.T) {
	before := testutil.ToFloat64(leadsCaptured.WithLabelValues("retail"))
	RecordLeadCaptured("retail")
	assert.Equal(t, 1.0, testutil.ToFloat64(leadsCaptured.WithLabelValues("retail"))-before)

	before = testutil.ToFloat64(sinksDisabled.WithLabelValues("forms"))
	RecordSinkDisabled("forms")
	assert.Equal(t, 1.0, testutil.ToFloat64(sinksDisabled.WithLabelValues("forms"))-before)
}

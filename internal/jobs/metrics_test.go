package jobmetrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T, registry *prometheus.Registry) string {
	t.Helper()
	rr := httptest.NewRecorder()
	promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rr.Body.String()
}

func TestTrackerRecordsOutcome(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	assert.NoError(t, metrics.Track("publish").End(nil))
	boom := errors.New("boom")
	assert.ErrorIs(t, metrics.Track("publish").End(boom), boom)

	body := scrape(t, registry)
	assert.Contains(t, body, `dashboard_jobs_total{job="publish",status="success"} 1`)
	assert.Contains(t, body, `dashboard_jobs_total{job="publish",status="failure"} 1`)
	assert.Contains(t, body, `dashboard_jobs_failures_total{job="publish"} 1`)
	assert.Contains(t, body, `dashboard_job_duration_seconds_count{job="publish"} 2`)
}

func TestAddPublished(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	metrics.AddPublished("overview")
	metrics.AddPublished("overview")
	metrics.AddPublished("")

	assert.Contains(t, scrape(t, registry), `dashboard_snapshots_published_total{page="overview"} 2`)
}

func TestNilMetricsTrackerPassesErrorThrough(t *testing.T) {
	var metrics *Metrics
	boom := errors.New("boom")
	assert.ErrorIs(t, metrics.Track("publish").End(boom), boom)
	metrics.AddPublished("insights")
}

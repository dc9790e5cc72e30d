package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-dashboard/internal/dashboard"
	dashboardhttp "github.com/odyssey-erp/odyssey-dashboard/internal/dashboard/http"
	"github.com/odyssey-erp/odyssey-dashboard/internal/observability"
	"github.com/odyssey-erp/odyssey-dashboard/internal/view"
	"github.com/odyssey-erp/odyssey-dashboard/jobs"
)

func newTestRouter(t *testing.T) (http.Handler, *observability.Metrics) {
	t.Helper()
	engine, err := view.NewEngine()
	require.NoError(t, err)
	metrics := observability.NewMetrics()
	service := dashboard.NewService(dashboard.NewStaticSource(), metrics, 0)
	cfg := &Config{AppEnv: "production", APIRateLimit: 120, GlobalRateLimit: 600}
	return NewRouter(RouterParams{
		Config:           cfg,
		DashboardHandler: dashboardhttp.NewHandler(nil, service, engine, nil, cfg.APIRateLimit),
		JobHandler:       jobs.NewHandler(nil, nil),
		Metrics:          metrics,
	}), metrics
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := serve(router, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestRouterServesStaticCSS(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := serve(router, "/static/css/app.css")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Body.String(), ".bg-indigo-500")
}

func TestRouterMountsDashboardAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(router, "/api/overview").Code)
	assert.Equal(t, http.StatusOK, serve(router, "/insights").Code)

	rr := serve(router, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `dashboard_payload_loads_total{outcome="ok",page="overview",source="static"} 1`)
	assert.Contains(t, body, `dashboard_http_requests_total{code="200",route="/api/overview"} 1`)
}

func TestRouterMountsJobHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := serve(router, "/jobs/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"queue":"default"`)
}

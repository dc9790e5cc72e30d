package dashboardhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/odyssey-erp/odyssey-dashboard/internal/platform/httpx"
)

// DefaultAPIRateLimit is the per IP request budget of the JSON API per minute.
const DefaultAPIRateLimit = 120

// MountRoutes registers dashboard endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(h.apiLimit, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), "api rate limit exceeded")
		}),
	)

	r.Get("/", h.handleIndex)
	r.Get("/overview", h.handleOverview)
	r.Get("/insights", h.handleInsights)
	r.Route("/api", func(api chi.Router) {
		api.Use(limiter)
		api.Get("/overview", h.handleOverviewAPI)
		api.Get("/insights", h.handleInsightsAPI)
	})
}

func rateLimitKey(r *http.Request) (string, error) {
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}

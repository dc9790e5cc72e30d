package dashboardhttp

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
	"github.com/odyssey-erp/odyssey-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-dashboard/internal/render"
	"github.com/odyssey-erp/odyssey-dashboard/internal/render/svg"
	"github.com/odyssey-erp/odyssey-dashboard/internal/view"
)

const (
	requestTimeout = 3 * time.Second
	themeCookie    = "theme"
	chartWidth     = 720
	chartHeight    = 260
)

// DashboardService defines the payload contract used by the handler.
type DashboardService interface {
	Overview(ctx context.Context) (contract.OverviewResponse, error)
	Insights(ctx context.Context) (contract.InsightsResponse, error)
}

// BarRenderer draws the monthly chart.
type BarRenderer func(width, height int, values []float64, labels []string, opts svg.BarOpts) (template.HTML, error)

// Handler serves the dashboard API and the server rendered pages.
type Handler struct {
	logger    *slog.Logger
	service   DashboardService
	templates *view.Engine
	bar       BarRenderer
	apiLimit  int
}

// NewHandler constructs the dashboard HTTP handler. A nil bar renderer falls
// back to svg.Bars.
func NewHandler(logger *slog.Logger, service DashboardService, templates *view.Engine, bar BarRenderer, apiLimit int) *Handler {
	if bar == nil {
		bar = svg.Bars
	}
	if apiLimit <= 0 {
		apiLimit = DefaultAPIRateLimit
	}
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		bar:       bar,
		apiLimit:  apiLimit,
	}
}

type overviewView struct {
	Page  render.OverviewPage
	Chart template.HTML
}

type insightsView struct {
	Page render.InsightsPage
}

func (h *Handler) handleOverviewAPI(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	resp, err := h.service.Overview(ctx)
	if err != nil {
		h.respondAPIError(w, "load overview", err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleInsightsAPI(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	resp, err := h.service.Insights(ctx)
	if err != nil {
		h.respondAPIError(w, "load insights", err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data := h.pageData(w, r, render.DefaultOverviewTitle)
	resp, err := h.service.Overview(ctx)
	if err != nil {
		h.renderLoading(w, "load overview", err, data)
		return
	}

	page := render.BuildOverview(resp, render.Options{IsDark: data.Dark})
	chart, err := h.monthlyChart(page.Monthly, render.NewFormatter(resp.Display))
	if err != nil {
		h.handleServerError(w, "render chart", err)
		return
	}

	data.Title = page.Title
	data.Data = overviewView{Page: page, Chart: chart}
	if err := h.templates.Render(w, "overview", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data := h.pageData(w, r, render.DefaultInsightsTitle)
	resp, err := h.service.Insights(ctx)
	if err != nil {
		h.renderLoading(w, "load insights", err, data)
		return
	}

	page := render.BuildInsights(resp, render.Options{IsDark: data.Dark})
	data.Title = page.Title
	data.Data = insightsView{Page: page}
	if err := h.templates.Render(w, "insights", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	target := "/overview"
	if q := r.URL.RawQuery; q != "" {
		target += "?" + q
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) monthlyChart(m render.MonthlyPanel, f render.Formatter) (template.HTML, error) {
	return h.bar(chartWidth, chartHeight, m.Values, m.Labels, svg.BarOpts{
		Title:        m.Title,
		Description:  m.TotalLabel + " " + m.TotalText,
		GradientFrom: m.GradientFrom,
		GradientTo:   m.GradientTo,
		Radius:       m.Radius,
		BarSize:      m.BarSize,
		TooltipLabel: m.TooltipLabel,
		Format:       f.Currency,
		TickFormat:   f.Integer,
	})
}

// pageData resolves the theme from ?theme= (remembered in a cookie) or the
// cookie itself, defaulting to light.
func (h *Handler) pageData(w http.ResponseWriter, r *http.Request, title string) view.TemplateData {
	theme := view.ThemeLight
	if q := r.URL.Query().Get("theme"); q == view.ThemeDark || q == view.ThemeLight {
		theme = q
		http.SetCookie(w, &http.Cookie{
			Name:     themeCookie,
			Value:    q,
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	} else if c, err := r.Cookie(themeCookie); err == nil && c.Value == view.ThemeDark {
		theme = view.ThemeDark
	}
	return view.TemplateData{
		Title:       title,
		CurrentPath: r.URL.Path,
		Theme:       theme,
		Dark:        theme == view.ThemeDark,
	}
}

func (h *Handler) renderLoading(w http.ResponseWriter, context string, err error, data view.TemplateData) {
	h.logError(context, err)
	if rerr := h.templates.RenderStatus(w, http.StatusServiceUnavailable, "loading", data); rerr != nil {
		h.handleServerError(w, "render loading", rerr)
	}
}

func (h *Handler) respondAPIError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	httpx.RespondError(w, err)
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

// HandleOverviewForTest exposes the overview page handler for tests.
func (h *Handler) HandleOverviewForTest(w http.ResponseWriter, r *http.Request) {
	h.handleOverview(w, r)
}

// HandleInsightsForTest exposes the insights page handler for tests.
func (h *Handler) HandleInsightsForTest(w http.ResponseWriter, r *http.Request) {
	h.handleInsights(w, r)
}

package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/derby-xg/internal/platform/logging"
	"github.com/riskibarqy/derby-xg/internal/render"
	"github.com/riskibarqy/derby-xg/internal/usecase"
)

// DashboardReader serves the cached dashboard and recomputes it on demand.
type DashboardReader interface {
	Get(ctx context.Context) (usecase.DashboardData, error)
	Warmup(ctx context.Context) error
	TeamSummary(ctx context.Context, team string) (usecase.TeamSummary, error)
}

type Handler struct {
	dashboard DashboardReader
	logger    *logging.Logger
}

func NewHandler(dashboard DashboardReader, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Page renders the HTML dashboard.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Page")
	defer span.End()

	data, err := h.dashboard.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard page failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WritePage(w, data); err != nil {
		h.logger.ErrorContext(ctx, "render dashboard page failed", "error", err)
		writeInternalError(ctx, w)
	}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	data, err := h.dashboard.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toDashboardDTO(data))
}

// GetCharts returns the Plotly figures the HTML page draws.
func (h *Handler) GetCharts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCharts")
	defer span.End()

	data, err := h.dashboard.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard charts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, chartsDTO{Figures: render.BuildCharts(data)})
}

// GetTeam returns one team's performance, observed weeks and matches.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	summary, err := h.dashboard.TeamSummary(ctx, r.PathValue("team"))
	if err != nil {
		h.logger.WarnContext(ctx, "get team summary failed", "team", r.PathValue("team"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toTeamSummaryDTO(summary))
}

// RefreshDashboard recomputes the dashboard from the store. On failure the
// previously cached value keeps being served.
func (h *Handler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshDashboard")
	defer span.End()

	if err := h.dashboard.Warmup(ctx); err != nil {
		h.logger.WarnContext(ctx, "refresh dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	data, err := h.dashboard.Get(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toDashboardDTO(data))
}

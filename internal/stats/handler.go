package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlas-console/atlas-console/internal/platform/httpx"
	"github.com/atlas-console/atlas-console/internal/shared"
)

// Handler exposes the dashboard stat endpoint under /data.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance. A nil logger falls back to
// slog.Default.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers stat routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard-stat", h.dashboardStat)
}

func (h *Handler) dashboardStat(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), actor.UserID)
	if err != nil {
		h.logger.Error("dashboard stat", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dashboard, "")
}

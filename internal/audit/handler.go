package audit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlas-console/atlas-console/internal/platform/httpx"
	"github.com/atlas-console/atlas-console/internal/shared"
)

// Handler exposes the system log endpoints under /data.
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

// MountRoutes registers the system log routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/system-logs", h.getSystemLogs)
}

func (h *Handler) getSystemLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	logs, err := h.service.SystemLogs(r.Context(), actor.UserID)
	if err != nil {
		h.logger.Error("list system logs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if logs == nil {
		logs = []Log{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"logs": logs}, "System logs fetched successfully.")
}

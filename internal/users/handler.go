package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlas-console/atlas-console/internal/platform/httpx"
	"github.com/atlas-console/atlas-console/internal/shared"
)

// Handler wires the user management endpoints under /user.
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

// MountRoutes registers user routes. Authorization happens in the gate
// middleware before these handlers run.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/create-account", h.createAccount)
	r.Get("/all-users", h.allUsers)
	r.Put("/edit-user", h.editUser)
	r.Put("/delete-user", h.deleteUser)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var in CreateAccountInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	user, err := h.service.CreateAccount(r.Context(), actor, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"user": user}, "Account created successfully.")
}

func (h *Handler) allUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	list, err := h.service.AllUsers(r.Context(), actor)
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []User{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"users": list}, "Users fetched successfully.")
}

func (h *Handler) editUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var in EditUserInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	user, err := h.service.EditUser(r.Context(), actor, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": user}, "User updated successfully.")
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var in DeleteUserInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	if err := h.service.DeleteUser(r.Context(), actor, in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

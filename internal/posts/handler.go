package posts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlas-console/atlas-console/internal/platform/httpx"
	"github.com/atlas-console/atlas-console/internal/shared"
)

// Handler wires the post and comment endpoints. The routes live under
// /user to match the permission table keys.
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

// MountRoutes registers post routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/post", h.getPosts)
	r.Post("/post", h.createPost)
	r.Put("/post", h.editPost)
	r.Put("/delete-post", h.deletePost)
	r.Post("/comment", h.addComment)
}

func (h *Handler) getPosts(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	list, err := h.service.Posts(r.Context(), actor)
	if err != nil {
		h.logger.Error("list posts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Post{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"posts": list}, "")
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var in CreatePostInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	post, err := h.service.CreatePost(r.Context(), actor, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"post": post}, "Post created successfully.")
}

func (h *Handler) editPost(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var in EditPostInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	post, err := h.service.EditPost(r.Context(), actor, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"post": post}, "Post updated successfully.")
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var in DeletePostInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	if err := h.service.DeletePost(r.Context(), actor, in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	var in AddCommentInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	comment, err := h.service.AddComment(r.Context(), actor, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"comment": comment}, "Comment added successfully.")
}

package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/atlas-console/atlas-console/internal/access"
	"github.com/atlas-console/atlas-console/internal/audit"
	"github.com/atlas-console/atlas-console/internal/auth"
	"github.com/atlas-console/atlas-console/internal/observability"
	"github.com/atlas-console/atlas-console/internal/platform/httpx"
	"github.com/atlas-console/atlas-console/internal/posts"
	"github.com/atlas-console/atlas-console/internal/stats"
	"github.com/atlas-console/atlas-console/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger       *slog.Logger
	Config       *Config
	Gate         *access.Gate
	AuthHandler  *auth.Handler
	UsersHandler *users.Handler
	PostsHandler *posts.Handler
	AuditHandler *audit.Handler
	StatsHandler *stats.Handler
	Metrics      *observability.Metrics
}

// NewRouter constructs the chi.Router with console defaults. Everything
// under /user and /data sits behind the authorization gate; /auth/login
// and /health stay public.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(LoginRateLimit())
		params.AuthHandler.MountRoutes(r)
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(params.Gate.Middleware)
		params.UsersHandler.MountRoutes(r)
		params.PostsHandler.MountRoutes(r)
	})

	r.Route("/data", func(r chi.Router) {
		r.Use(params.Gate.Middleware)
		params.AuditHandler.MountRoutes(r)
		params.StatsHandler.MountRoutes(r)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, http.StatusNotFound, "resource not found")
	})

	return r
}

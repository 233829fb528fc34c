package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlas-console/atlas-console/internal/access"
	"github.com/atlas-console/atlas-console/internal/app"
	"github.com/atlas-console/atlas-console/internal/audit"
	"github.com/atlas-console/atlas-console/internal/auth"
	"github.com/atlas-console/atlas-console/internal/observability"
	"github.com/atlas-console/atlas-console/internal/platform/cache"
	"github.com/atlas-console/atlas-console/internal/platform/db"
	"github.com/atlas-console/atlas-console/internal/posts"
	"github.com/atlas-console/atlas-console/internal/stats"
	"github.com/atlas-console/atlas-console/internal/token"
	"github.com/atlas-console/atlas-console/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, dashboard caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	usersRepo := users.NewRepository(pool)

	if err := users.EnsureBootstrapAdmin(ctx, usersRepo, logger, users.BootstrapAdmin{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		FullName: cfg.AdminFullName,
	}); err != nil {
		logger.Error("bootstrap admin", slog.Any("error", err))
		os.Exit(1)
	}

	recorder := audit.NewPGRecorder(pool)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authService := auth.NewService(usersRepo, issuer, recorder, logger)
	authHandler := auth.NewHandler(logger, authService)

	usersService := users.NewService(usersRepo, recorder, logger)
	usersHandler := users.NewHandler(logger, usersService)

	postsRepo := posts.NewRepository(pool)
	postsService := posts.NewService(postsRepo, recorder, logger)
	postsHandler := posts.NewHandler(logger, postsService)

	auditRepo := audit.NewRepository(pool)
	auditService := audit.NewService(auditRepo)
	auditHandler := audit.NewHandler(logger, auditService)

	statsService := stats.NewService(usersRepo, auditRepo, stats.NewCache(redisClient, cfg.StatsCacheTTL))
	statsHandler := stats.NewHandler(logger, statsService)

	gate := access.NewGate(access.DefaultTable(), issuer, logger)
	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		Gate:         gate,
		AuthHandler:  authHandler,
		UsersHandler: usersHandler,
		PostsHandler: postsHandler,
		AuditHandler: auditHandler,
		StatsHandler: statsHandler,
		Metrics:      metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

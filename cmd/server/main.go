// Package main is the entrypoint for the echo quiz API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/echoquiz/internal/api"
	"github.com/kiranshivaraju/echoquiz/internal/api/handler"
	mw "github.com/kiranshivaraju/echoquiz/internal/api/middleware"
	"github.com/kiranshivaraju/echoquiz/internal/api/response"
	"github.com/kiranshivaraju/echoquiz/internal/cache"
	"github.com/kiranshivaraju/echoquiz/internal/config"
	"github.com/kiranshivaraju/echoquiz/internal/predict"
	"github.com/kiranshivaraju/echoquiz/internal/quiz"
	"github.com/kiranshivaraju/echoquiz/internal/results"
	"github.com/kiranshivaraju/echoquiz/internal/store"
)

const shutdownTimeout = 30 * time.Second

const rateLimitGroup = "write"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config, fail fast on invalid values
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "results_backend", cfg.Results.Backend, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Open the result store
	resultStore, closeStore, err := openResultStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// 3. Optional Redis cache for rate limiting
	var redisCache cache.Cache
	var rateLimit *mw.RateLimit
	if cfg.RateLimitEnabled() {
		rc, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer rc.Close()

		if err := rc.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected", "requests_per_minute", cfg.Redis.RequestsPerMinute)
		redisCache = rc
		rateLimit = mw.NewRateLimit(rc, rateLimitGroup, cfg.Redis.RequestsPerMinute)
	}

	// 4. Resolve the classifier once
	predictor := predict.NewPredictor(cfg.Model)
	slog.Info("predictor initialized", "predictor", predictor.Name())

	// 5. Domain services
	questions := quiz.NewService(cfg.Quiz)
	recorder := results.NewRecorder(resultStore)

	var adminAuth *mw.AdminAuth
	if cfg.Admin.TokenHash != "" {
		adminAuth = mw.NewAdminAuth(cfg.Admin.TokenHash)
	}

	// 6. Build router with dependencies
	deps := api.Dependencies{
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   rateLimit,
		AdminAuth:   adminAuth,

		IndexHandler:       handler.NewIndexHandler(),
		HealthHandler:      healthHandler(resultStore, redisCache, predictor.Name()),
		QuestionsHandler:   handler.NewQuestionsHandler(questions),
		VideoHandler:       handler.NewVideoHandler(cfg.Quiz.VideoDirs),
		PredictHandler:     handler.NewPredictHandler(predictor),
		SubmitResults:      handler.NewSubmitResultsHandler(recorder),
		ListResultsHandler: handler.NewListResultsHandler(recorder),
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // video streaming
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// openResultStore builds the configured result store and returns a func that
// releases it.
func openResultStore(ctx context.Context, cfg *config.Config) (store.ResultStore, func(), error) {
	switch cfg.Results.Backend {
	case config.BackendPostgres:
		pool, err := store.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		slog.Info("database connected")

		if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		slog.Info("database migrations applied")
		return store.NewPostgresStore(pool), pool.Close, nil
	default:
		slog.Info("using csv result store", "path", cfg.Results.Path)
		return store.NewCSVStore(cfg.Results.Path), func() {}, nil
	}
}

// healthHandler checks result store and cache connectivity. A nil cache is
// reported as disabled.
func healthHandler(s store.ResultStore, c cache.Cache, predictorName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"results": "ok",
			"cache":   "disabled",
		}

		if err := s.Ping(r.Context()); err != nil {
			slog.Warn("result store ping failed", "error", err)
			checks["results"] = "degraded"
		}
		if c != nil {
			checks["cache"] = "ok"
			if err := c.Ping(r.Context()); err != nil {
				slog.Warn("cache ping failed", "error", err)
				checks["cache"] = "degraded"
			}
		}

		status, code := "ok", http.StatusOK
		if checks["results"] == "degraded" || checks["cache"] == "degraded" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		response.Status(w, code, map[string]any{
			"status":    status,
			"services":  checks,
			"predictor": predictorName,
		})
	}
}

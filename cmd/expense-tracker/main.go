package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/glensd/personalExpenseTracker/internal/auth"
	"github.com/glensd/personalExpenseTracker/internal/backend"
	"github.com/glensd/personalExpenseTracker/internal/cache"
	"github.com/glensd/personalExpenseTracker/internal/charts"
	"github.com/glensd/personalExpenseTracker/internal/cli"
	apphttp "github.com/glensd/personalExpenseTracker/internal/http"
	"github.com/glensd/personalExpenseTracker/internal/log"
	"github.com/glensd/personalExpenseTracker/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendConfig)
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "driver", cfg.DBDriver)
		os.Exit(1)
	}

	repo := result.Repository
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, result.Revocation)

	renderer := charts.NewCachedRenderer(charts.NewRenderer(), charts.DefaultCacheSize, charts.DefaultCacheTTL)
	cacheManager := cache.NewManager(logger)
	cacheManager.Register(renderer.Cache())
	cacheManager.StartCleanup(5 * time.Minute)

	srv, err := apphttp.NewServer(":"+cfg.Port, apphttp.Dependencies{
		Categories: services.NewCategoryService(repo),
		Expenses:   services.NewExpenseService(repo, repo, repo, result.Publisher),
		Auth:       services.NewAuthService(repo, tokens),
		Charts:     renderer,
		DB:         repo,
		Logger:     logger,
	}, apphttp.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TrustedProxies:     cfg.TrustedProxies,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		logger.Error("Failed to configure HTTP server", "error", err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cacheManager.Stop()

		m := srv.Metrics()
		logger.Info("HTTP request totals",
			"requests", m.TotalRequests,
			"client_errors", m.ClientErrors,
			"server_errors", m.ServerErrors,
			"chart_cache_hits", renderer.Cache().Stats().Hits)
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	logger.Info("Starting expense tracker server",
		"port", cfg.Port,
		"driver", cfg.DBDriver,
		"amqp_enabled", result.Publisher != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}

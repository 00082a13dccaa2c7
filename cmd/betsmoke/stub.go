package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/shiiiru/betsmoke/internal/app"
	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/guard"
	"github.com/shiiiru/betsmoke/internal/infra"
	"github.com/shiiiru/betsmoke/internal/service"
)

func newStubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stub",
		Short: "Serve the in-memory reference backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := infra.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serveStub(cmd.Context(), cfg, newLogger(cfg, cmd.ErrOrStderr()))
		},
	}
}

func newStubRouter(cfg *infra.Config, logger *slog.Logger) (http.Handler, error) {
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTUserExpiry, cfg.JWTAdminExpiry)
	book := service.NewBook(jwtMgr, logger, service.Options{StartingBalance: cfg.StartingBalance})
	if err := book.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	deps := app.RouterDeps{Book: book, JWTMgr: jwtMgr, Logger: logger}
	if cfg.AuthRateLimit > 0 {
		deps.AuthLimiter = guard.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	}
	if cfg.StubMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Metrics = reg
	}
	return app.NewRouter(deps), nil
}

func serveStub(ctx context.Context, cfg *infra.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	router, err := newStubRouter(cfg, logger)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.StubPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("reference backend starting", "addr", addr, "admin", cfg.AdminEmail)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("reference backend stopped")
	return nil
}

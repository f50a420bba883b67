package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"financas/internal/ai"
	"financas/internal/config"
	"financas/internal/core"
	apphttp "financas/internal/http"
	applog "financas/internal/log"
	"financas/internal/session"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, insights will be unavailable")
	}

	store := session.NewStore(core.Money{Cents: cfg.DefaultIncomeCents}, cfg.SessionTTL)
	defer store.Stop()

	tips := ai.NewClient(cfg.GeminiAPIKey, ai.WithModel(cfg.GeminiModel))

	srv := apphttp.NewServer(":"+cfg.Port, store, tips, cfg.MaxUploadBytes)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 90 * time.Second // insights calls wait on the Gemini API
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting financas server", "port", cfg.Port, "model", cfg.GeminiModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

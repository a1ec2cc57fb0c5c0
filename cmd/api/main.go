package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insig8-ai/internal/agent"
	"insig8-ai/internal/config"
	"insig8-ai/internal/http"
	"insig8-ai/internal/platform"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API is the local bridge between the launcher and its AI knowledge core:
// commitment tracking, meeting recording, screen awareness and semantic search.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Insig8 AI Bridge
//   description: |
//     Local bridge API for the launcher. All timestamps are epoch milliseconds.
//     Errors carry a stable code: invalid_input, not_found, permission_denied,
//     already_recording, not_recording, invalid_transition,
//     capability_unavailable, external_service or internal.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := agent.New(ctx, cfg, platform.MacOS(os.TempDir()), logger)
	if err != nil {
		log.Fatalf("Failed to create agent: %v", err)
	}

	if err := manager.Initialize(ctx); err != nil {
		manager.Shutdown(context.Background())
		log.Fatalf("Failed to initialize agent: %v", err)
	}
	slog.Info("Agent initialized", "db", cfg.DBPath)

	router := http.NewRouter(&http.Deps{Agent: manager})

	// The bridge only serves the local host application.
	addr := "127.0.0.1:" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			manager.Shutdown(context.Background())
			log.Fatalf("API server failed to start: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down API server", "error", err)
	}
	manager.Shutdown(shutdownCtx)
	slog.Info("Shutdown complete")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mustafa-app/console/internal"
	"github.com/mustafa-app/console/internal/backend"
	"github.com/mustafa-app/console/internal/guard"
	"github.com/mustafa-app/console/internal/handler"
	"github.com/mustafa-app/console/internal/metrics"
	"github.com/mustafa-app/console/internal/middleware"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize backend client
	client := backend.New(cfg.BackendURL, logger, backend.WithTimeout(cfg.BackendTimeout))
	logger.Info("Backend client ready", "url", cfg.BackendURL)

	// Initialize middleware
	isSecure := cfg.IsSecure()
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	identityMw := middleware.NewIdentityMiddleware(client, logger, isSecure)
	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginMaxAttempts, cfg.LoginWindow, logger)

	// Initialize handlers
	h := handler.New(handler.Config{
		Backend:      client,
		Logger:       logger,
		LoginLimiter: loginLimiter,
		IsSecure:     isSecure,
	})

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	staticFS := http.FileServer(http.Dir(cfg.StaticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFS))

	// Health check
	mux.HandleFunc("GET /health", h.Health)

	// Metrics (basic auth protected)
	mux.Handle("GET /metrics", middleware.MetricsAuth(cfg.MetricsUsername, cfg.MetricsPassword)(promhttp.Handler()))

	// Auth routes (public)
	mux.Handle("POST /login", loginLimiter.Limit(http.HandlerFunc(h.Login)))
	mux.HandleFunc("POST /logout", h.Logout)

	// API routes (session required)
	requireIdentity := middleware.Stack(identityMw.WithIdentity, identityMw.RequireIdentity)

	mux.Handle("GET /api/me", requireIdentity(http.HandlerFunc(h.Me)))
	mux.Handle("GET /api/fotos", requireIdentity(http.HandlerFunc(h.ListFotos)))
	mux.Handle("DELETE /api/fotos/{id}", requireIdentity(http.HandlerFunc(h.DeleteFoto)))
	mux.Handle("GET /api/promotores", requireIdentity(http.HandlerFunc(h.ListPromotores)))
	mux.Handle("POST /api/promotores", requireIdentity(http.HandlerFunc(h.CreatePromotor)))
	mux.Handle("PUT /api/promotores/{id}", requireIdentity(http.HandlerFunc(h.UpdatePromotor)))
	mux.Handle("GET /api/contratos", requireIdentity(http.HandlerFunc(h.ListContratos)))
	mux.Handle("POST /api/contratos", requireIdentity(http.HandlerFunc(h.UploadContrato)))
	mux.Handle("POST /api/insights/ask", requireIdentity(http.HandlerFunc(h.Ask)))
	mux.Handle("GET /api/kpis", requireIdentity(http.HandlerFunc(h.KPIs)))

	// Everything else is the admin UI; the guard has already redirected
	// anonymous navigation by the time a request reaches the SPA handler.
	mux.Handle("/", handler.NewSPA(cfg.StaticDir))

	// Global middleware: outermost first.
	stack := middleware.Stack(
		middleware.RequestID,
		loggingMw.Handler,
		metrics.Middleware,
		securityMw.Handler,
		guard.Middleware,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: stack(mux),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// Package handler contains the HTTP handlers for the Mustafa console.
//
// Handlers are thin: they parse and validate the request, call the backend
// client with the caller's credential, and shape the response. All business
// rules live in the backend.
package handler

import (
	"log/slog"

	"github.com/mustafa-app/console/internal/backend"
	"github.com/mustafa-app/console/internal/middleware"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	backend      *backend.Client
	logger       *slog.Logger
	loginLimiter *middleware.LoginRateLimiter
	isSecure     bool
}

// Config configures a Handler.
type Config struct {
	Backend      *backend.Client
	Logger       *slog.Logger
	LoginLimiter *middleware.LoginRateLimiter
	IsSecure     bool
}

// New creates the handler set.
func New(cfg Config) *Handler {
	return &Handler{
		backend:      cfg.Backend,
		logger:       cfg.Logger,
		loginLimiter: cfg.LoginLimiter,
		isSecure:     cfg.IsSecure,
	}
}

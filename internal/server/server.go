package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gracepoint-dev/church-admin-be/internal/auth"
	"github.com/gracepoint-dev/church-admin-be/internal/config"
	"github.com/gracepoint-dev/church-admin-be/internal/http/handlers"
	"github.com/gracepoint-dev/church-admin-be/internal/middleware"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server. Guarded routes
// are composed as Authenticate(RequireRole(handler)): the token is verified
// and the identity resolved before any role comparison runs.
func New(cfg config.Config, store storage.Store) *Server {
	mux := http.NewServeMux()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	guard := func(role string, next http.HandlerFunc) http.Handler {
		return middleware.Authenticate(tokens, store, middleware.RequireRole(role, next))
	}

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(store, tokens).Register(mux)
	handlers.NewAttendanceHandler(store).Register(mux, guard)
	handlers.NewPaymentsHandler(store, cfg.Accounts).Register(mux, guard)
	handlers.NewUsersHandler(store).Register(mux, guard)
	handlers.NewProjectsHandler(store).Register(mux, guard)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

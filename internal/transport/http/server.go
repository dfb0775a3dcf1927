package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oshokin/authgate/internal/config"
	"github.com/oshokin/authgate/internal/logger"
)

const (
	// loginPath is the scripted-login endpoint.
	loginPath = "/login"
	// healthPath is the liveness probe endpoint.
	healthPath = "/health"
)

// Server is the HTTP envelope around the login orchestrator.
type Server struct {
	cfg           *config.Config
	authenticator Authenticator
	httpServer    *http.Server
}

// NewServer wires the router, middleware, and handlers.
func NewServer(cfg *config.Config, authenticator Authenticator) *Server {
	server := &Server{
		cfg:           cfg,
		authenticator: authenticator,
	}

	router := chi.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(bodyLimitMiddleware(cfg.ParsedMaxRequestBodySize))
	router.Use(loggingMiddleware(config.DefaultMaxLogLength))

	router.Post(loginPath, server.handleLogin)
	router.Get(healthPath, server.handleHealth)

	server.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	return server
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Infof(ctx, "HTTP server listening on %s", s.cfg.ListenAddress)

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}

package app

import (
	"context"

	"github.com/oshokin/authgate/internal/config"
	"github.com/oshokin/authgate/internal/logger"
	"github.com/oshokin/authgate/internal/service/login"
	transport "github.com/oshokin/authgate/internal/transport/http"
)

// ExecuteRootCommand is the entry point for the application.
// It initializes the login orchestrator, sets up the HTTP server,
// and serves until the context is canceled.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config) {
	orchestrator, err := login.NewOrchestrator(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize login orchestrator: %v", err)
	}

	logger.InfoKV(ctx, "Service configured",
		"login_url", cfg.LoginURL,
		"marker_set_version", cfg.Markers.Version)

	server := transport.NewServer(cfg, orchestrator)

	if err = server.Run(ctx); err != nil {
		logger.Fatalf(ctx, "HTTP server failed: %v", err)
	}
}

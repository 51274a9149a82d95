package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/learnhub/internal/config"
	"github.com/nfrund/learnhub/internal/logging"
	"github.com/nfrund/learnhub/internal/server"
)

func main() {
	cfg := config.New()
	logging.New(cfg.GetLogFormat())

	ctx := context.Background()

	// Create a new server instance wired to the configured store.
	s, err := server.NewFromConfig(ctx, cfg)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	s.RegisterRoutes()

	if err := s.Boot(ctx); err != nil {
		slog.Error("Failed to boot modules", "error", err)
		os.Exit(1)
	}

	if err := s.Start(ctx, cfg.GetAppAddr()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

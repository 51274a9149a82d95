package leaderboard

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/module"
	"github.com/nfrund/learnhub/internal/pubsub"
	"github.com/nfrund/learnhub/internal/registry"
)

// Module serves the leaderboard and keeps points up to date.
type Module struct {
	module.BaseModule
	progress   domain.ProgressRepository
	subscriber pubsub.Subscriber
}

// Dependencies holds all the services that the Module requires to operate.
type Dependencies struct {
	Progress   domain.ProgressRepository
	Subscriber pubsub.Subscriber
}

// New creates a new leaderboard Module.
func New(deps Dependencies) *Module {
	return &Module{progress: deps.Progress, subscriber: deps.Subscriber}
}

func (m *Module) Name() string {
	return "leaderboard"
}

// Boot starts the points awarder and mounts the routes.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	if err := NewAwarder(m.subscriber, m.progress).Start(ctx); err != nil {
		return err
	}

	slog.Info("Booting leaderboard module: setting up routes...")
	handler := NewHandler(m.progress)
	g.GET("/leaderboard", handler.List)
	g.GET("/leaderboard/view", handler.View)
	g.GET("/leaderboard/rows", handler.Rows)
	return nil
}

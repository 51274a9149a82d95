package dashboard

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/module"
	"github.com/nfrund/learnhub/internal/registry"
)

// Module serves the teacher dashboard.
type Module struct {
	module.BaseModule
	source Source
}

// Dependencies holds all the services that the Module requires to operate.
type Dependencies struct {
	Source Source
}

// New creates a new dashboard Module.
func New(deps Dependencies) *Module {
	return &Module{source: deps.Source}
}

func (m *Module) Name() string {
	return "dashboard"
}

func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting dashboard module: setting up routes...")
	handler := NewHandler(NewService(m.source))

	teacher := g.Group("/teacher", middleware.Auth(), middleware.RequireRole(domain.RoleTeacher))
	teacher.GET("", handler.View)
	teacher.GET("/stats", handler.Stats)
	return nil
}

package quizzes

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/module"
	"github.com/nfrund/learnhub/internal/pubsub"
	"github.com/nfrund/learnhub/internal/registry"
)

// Module grades quizzes and serves quiz scores.
type Module struct {
	module.BaseModule
	service *Service
}

// Dependencies holds all the services that the Module requires to operate.
type Dependencies struct {
	Quizzes   domain.QuizRepository
	Publisher pubsub.Publisher
}

// New creates a new quizzes Module.
func New(deps Dependencies) *Module {
	return &Module{service: NewService(deps.Quizzes, deps.Publisher)}
}

func (m *Module) Name() string {
	return "quizzes"
}

// Register shares the Service so the lessons module can embed quizzes.
func (m *Module) Register(reg *registry.Registry) error {
	registry.Set(reg, ServiceKey, m.service)
	return nil
}

func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting quizzes module: setting up routes...")
	handler := NewHandler(m.service)

	quizzes := g.Group("/quizzes", middleware.Auth())
	quizzes.GET("", handler.List)
	quizzes.GET("/scores", handler.Scores)
	quizzes.GET("/:id", handler.Get)
	quizzes.POST("/:id/submit", handler.Submit)
	return nil
}

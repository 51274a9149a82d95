package lessons

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/module"
	"github.com/nfrund/learnhub/internal/modules/quizzes"
	"github.com/nfrund/learnhub/internal/registry"
	"github.com/nfrund/learnhub/internal/storage"
)

// Module serves course pages and lesson media.
type Module struct {
	module.BaseModule
	lessons domain.LessonRepository
	assets  storage.Store
}

// Dependencies holds all the services that the Module requires to operate.
type Dependencies struct {
	Lessons domain.LessonRepository
	Assets  storage.Store
}

// New creates a new lessons Module.
func New(deps Dependencies) *Module {
	return &Module{lessons: deps.Lessons, assets: deps.Assets}
}

func (m *Module) Name() string {
	return "lessons"
}

// Boot mounts the routes. Quiz panels are filled in when the quizzes module
// has registered its service.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting lessons module: setting up routes...")

	var loader QuizLoader
	if svc, ok := registry.Get(reg, quizzes.ServiceKey); ok {
		loader = svc
	} else {
		slog.Warn("Quizzes service not registered; lesson quizzes are disabled")
	}
	handler := NewHandler(m.lessons, loader)
	files := storage.NewFileHandler(m.assets, m.lessons)

	auth := middleware.Auth()
	g.GET("/lessons", handler.First, auth)
	g.GET("/courses/:id/lessons", handler.Course, auth)
	g.GET("/api/lesson/:id", handler.Lesson, auth)
	g.GET("/lessons/:id/video", files.Video, auth)
	g.GET("/lessons/:id/thumbnail", files.Thumbnail, auth)
	g.GET("/lessons/:id/textbook", files.Textbook, auth)
	return nil
}

package lessons

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/handlers"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/panel"
	"github.com/nfrund/learnhub/internal/view"
)

// QuizLoader loads a quiz with its questions.
type QuizLoader interface {
	Quiz(ctx context.Context, id string) (*domain.Quiz, error)
}

// Handler serves the lesson pages and lesson JSON.
type Handler struct {
	lessons domain.LessonRepository
	quizzes QuizLoader
	policy  *bluemonday.Policy
}

// NewHandler creates a new Handler. quizzes may be nil, in which case quiz
// panels show MsgQuizUnavailable.
func NewHandler(lessons domain.LessonRepository, quizzes QuizLoader) *Handler {
	return &Handler{lessons: lessons, quizzes: quizzes, policy: bluemonday.UGCPolicy()}
}

// PageRequest picks the initial panel. Collapse names an open dropdown
// to close after the panel's path has been opened.
type PageRequest struct {
	Panel    string `query:"panel"`
	Play     bool   `query:"play"`
	Collapse string `query:"collapse"`
}

// First renders the first course.
func (hd *Handler) First(c echo.Context) error {
	ctx := c.Request().Context()
	courses, err := hd.lessons.ListCourses(ctx)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to list courses", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not load lessons")
	}
	if len(courses) == 0 {
		return handlers.RenderPage(c, "Lessons", view.GetFlashData(c), Empty())
	}
	return hd.render(c, courses[0].ID)
}

// Course renders the course named by :id.
func (hd *Handler) Course(c echo.Context) error {
	return hd.render(c, c.Param("id"))
}

func (hd *Handler) render(c echo.Context, courseID string) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid panel")
	}

	ctx := c.Request().Context()
	course, err := hd.lessons.CourseTree(ctx, courseID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to load course", "course_id", courseID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not load lessons")
	}
	if course == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Course not found")
	}

	menu := NewMenu(course)
	selected := req.Panel
	if selected == "" {
		// htmx reports the page the request came from, fragment included.
		selected = panel.FragmentOf(c.Request().Header.Get("HX-Current-URL"))
	}
	active := menu.Navigator.Initial(selected)
	if req.Play {
		menu.Navigator.Play(active)
	}
	if d := menu.Dropdown(req.Collapse); d != nil && d.Expanded {
		d.Toggle()
	}

	v := View{Menu: menu, Quizzes: hd.loadQuizzes(ctx, menu), Policy: hd.policy}
	if handlers.IsHTMX(c) {
		return c.Render(http.StatusOK, "", Page(v))
	}
	return handlers.RenderPage(c, course.Name, view.GetFlashData(c), Page(v))
}

func (hd *Handler) loadQuizzes(ctx context.Context, menu *Menu) map[string]*domain.Quiz {
	loaded := make(map[string]*domain.Quiz)
	if hd.quizzes == nil {
		return loaded
	}
	for _, p := range menu.Navigator.Panels() {
		header := menu.Quiz(p.ID)
		if header == nil {
			continue
		}
		q, err := hd.quizzes.Quiz(ctx, header.ID)
		if err != nil {
			middleware.FromContext(ctx).Warn("Failed to load quiz for lesson page", "quiz_id", header.ID, "error", err)
			continue
		}
		loaded[q.ID] = q
	}
	return loaded
}

// Lesson returns a lesson as JSON.
func (hd *Handler) Lesson(c echo.Context) error {
	ctx := c.Request().Context()
	l, err := hd.lessons.FindLesson(ctx, c.Param("id"))
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to load lesson", "lesson_id", c.Param("id"), "error", err)
		return handlers.JSONError(c, http.StatusInternalServerError, "", "Could not load lesson")
	}
	if l == nil {
		return handlers.JSONError(c, http.StatusNotFound, "", "Not found")
	}
	return c.JSON(http.StatusOK, l)
}

package storage

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/middleware"
)

// Asset kinds served by FileHandler.
const (
	KindVideo     = "video"
	KindThumbnail = "thumbnail"
	KindTextbook  = "textbook"
)

// FileHandler streams lesson media from a Store.
type FileHandler struct {
	store   Store
	lessons domain.LessonRepository
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(s Store, lessons domain.LessonRepository) *FileHandler {
	return &FileHandler{store: s, lessons: lessons}
}

// assetPath resolves the stored path of a lesson asset. It returns "" when
// the lesson has no such asset.
func assetPath(l *domain.Lesson, kind string) string {
	switch kind {
	case KindVideo:
		return l.VideoPath()
	case KindThumbnail:
		return l.ThumbnailPath()
	case KindTextbook:
		return l.TextbookPath()
	}
	return ""
}

// Video serves the lesson video.
func (h *FileHandler) Video(c echo.Context) error { return h.serve(c, KindVideo) }

// Thumbnail serves the video poster image.
func (h *FileHandler) Thumbnail(c echo.Context) error { return h.serve(c, KindThumbnail) }

// Textbook serves the lesson's textbook.
func (h *FileHandler) Textbook(c echo.Context) error { return h.serve(c, KindTextbook) }

func (h *FileHandler) serve(c echo.Context, kind string) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	lessonID := c.Param("id")
	if lessonID == "" {
		return c.String(http.StatusBadRequest, "Lesson ID is required")
	}

	lesson, err := h.lessons.FindLesson(ctx, lessonID)
	if err != nil {
		logger.Error("Failed to load lesson for asset", slog.String("lessonID", lessonID), slog.String("error", err.Error()))
		return c.String(http.StatusInternalServerError, "Could not retrieve file")
	}
	if lesson == nil {
		return c.String(http.StatusNotFound, "File not found")
	}

	p := assetPath(lesson, kind)
	if p == "" {
		return c.String(http.StatusNotFound, "File not found")
	}

	f, err := h.store.Open(ctx, p)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Lesson asset missing from storage", slog.String("path", p))
		return c.String(http.StatusNotFound, "File not found")
	}
	if err != nil {
		logger.Error("Failed to open lesson asset", slog.String("path", p), slog.String("error", err.Error()))
		return c.String(http.StatusInternalServerError, "Could not retrieve file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logger.Error("Failed to stat lesson asset", slog.String("path", p), slog.String("error", err.Error()))
		return c.String(http.StatusInternalServerError, "Could not retrieve file")
	}

	// ServeContent handles Range requests, which video seeking relies on.
	http.ServeContent(c.Response(), c.Request(), path.Base(p), info.ModTime(), f)
	return nil
}

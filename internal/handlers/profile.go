package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/view"
	"github.com/nfrund/learnhub/web/src/templates/pages"
)

// ProfileHandler serves the student's own profile and stats.
type ProfileHandler struct {
	progress domain.ProgressRepository
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(progress domain.ProgressRepository) *ProfileHandler {
	return &ProfileHandler{progress: progress}
}

func (h *ProfileHandler) stats(c echo.Context, user *domain.User) (domain.Stats, error) {
	p, err := h.progress.FindProgress(c.Request().Context(), user.ID)
	if err != nil || p == nil {
		return domain.Stats{}, err
	}
	return p.Stats(), nil
}

// ProfileGet renders the profile page. Auth has already run.
func (h *ProfileHandler) ProfileGet(c echo.Context) error {
	user, _ := middleware.UserFromContext(c)
	stats, err := h.stats(c, user)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to load progress", "error", err)
	}
	return RenderPage(c, "Profile", view.GetFlashData(c), pages.Profile(user, stats))
}

// UserStats returns {streak, points} for the signed-in user.
func (h *ProfileHandler) UserStats(c echo.Context) error {
	user, _ := middleware.UserFromContext(c)
	stats, err := h.stats(c, user)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to load progress", "error", err)
		return JSONError(c, http.StatusInternalServerError, "stats_unavailable", "Could not load your stats.")
	}
	return c.JSON(http.StatusOK, stats)
}

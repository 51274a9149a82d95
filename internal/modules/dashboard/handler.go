package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/handlers"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/view"
)

// Handler serves the teacher dashboard.
type Handler struct {
	service *Service
}

// NewHandler creates a new Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// View renders the dashboard page.
func (hd *Handler) View(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := hd.service.Stats(ctx)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to compute dashboard stats", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not load the dashboard")
	}
	user, _ := middleware.UserFromContext(c)
	return handlers.RenderPage(c, "Teacher Dashboard", view.GetFlashData(c), Page(user.Name, stats))
}

// Stats returns the dashboard data as JSON.
func (hd *Handler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := hd.service.Stats(ctx)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to compute dashboard stats", "error", err)
		return handlers.JSONError(c, http.StatusInternalServerError, "stats_unavailable", "Could not load the dashboard")
	}
	return c.JSON(http.StatusOK, stats)
}

package leaderboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/handlers"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/view"
)

// Handler serves the ranking as JSON and as HTML.
type Handler struct {
	progress domain.ProgressRepository
}

// NewHandler creates a new Handler.
func NewHandler(progress domain.ProgressRepository) *Handler {
	return &Handler{progress: progress}
}

// RowsRequest selects a page of the table.
type RowsRequest struct {
	Page int `query:"page" validate:"omitempty,gte=1"`
}

// List returns every student as {username, points}, highest first.
func (h *Handler) List(c echo.Context) error {
	entries, err := h.progress.Leaderboard(c.Request().Context(), 0)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to load leaderboard", "error", err)
		return handlers.JSONError(c, http.StatusInternalServerError, "leaderboard_unavailable", MsgLoadFailed)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) board(c echo.Context, page int) *Board {
	b := NewBoard()
	if err := b.Load(c.Request().Context(), RepositoryFetcher(h.progress)); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to load leaderboard", "error", err)
	}
	b.SetPage(page)
	return b
}

// View renders the leaderboard page on its first page.
func (h *Handler) View(c echo.Context) error {
	return handlers.RenderPage(c, "Leaderboard", view.GetFlashData(c), Page(h.board(c, 1)))
}

// Rows returns the leaderboard block for ?page=N.
func (h *Handler) Rows(c echo.Context) error {
	var req RowsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return c.Render(http.StatusOK, "", Table(h.board(c, req.Page)))
}

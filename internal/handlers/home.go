package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/view"
	"github.com/nfrund/learnhub/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet renders the landing page with collapsed feature cards.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return RenderPage(c, "Home", view.GetFlashData(c), pages.Home())
}

// FeaturesGet returns the feature cards in the requested state. It is the
// target of the Show More / Show Less button.
func (h *HomeHandler) FeaturesGet(c echo.Context) error {
	var req FeaturesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid expanded flag")
	}
	return c.Render(http.StatusOK, "", pages.FeatureCards(req.Expanded))
}

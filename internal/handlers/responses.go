package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/view"
	"github.com/nfrund/learnhub/web/src/templates/layouts"
	g "maragu.dev/gomponents"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// JSONError writes an ErrorResponse with status.
func JSONError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorResponse{Code: code, Message: message})
}

// RenderPage wraps content in the base layout for the signed-in user, if
// any, and renders it with status 200.
func RenderPage(c echo.Context, title string, flashes view.FlashData, content g.Node) error {
	return RenderPageStatus(c, http.StatusOK, title, flashes, content)
}

// RenderPageStatus is RenderPage with an explicit status code.
func RenderPageStatus(c echo.Context, status int, title string, flashes view.FlashData, content g.Node) error {
	user, _ := middleware.UserFromContext(c)
	return c.Render(status, "", layouts.Base(title, user, flashes, content))
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

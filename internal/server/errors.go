package server

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/handlers"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/view"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// setupErrorHandling installs the HTTP error handler. Errors that are not
// echo.HTTPErrors are logged with a stack trace and answered with a 500.
// Browsers navigating to a page get the error inside the layout; htmx and
// API callers get echo's JSON body.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
			he = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
		} else if he.Internal != nil {
			logger.Warn("Request failed", "status", he.Code, "error", he.Internal)
		}

		if wantsPage(c) {
			message := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
				message = m
			}
			if rerr := renderErrorPage(c, he.Code, message); rerr == nil {
				return
			}
		}
		e.DefaultHTTPErrorHandler(he, c)
	}
}

// wantsPage reports whether the client is a browser navigating to a page.
func wantsPage(c echo.Context) bool {
	req := c.Request()
	return req.Method == http.MethodGet &&
		!handlers.IsHTMX(c) &&
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

func renderErrorPage(c echo.Context, code int, message string) error {
	content := h.Div(
		h.Class("error-page"),
		h.H1(g.Textf("%d %s", code, http.StatusText(code))),
		h.P(g.Text(message)),
		h.A(h.Href("/"), g.Text("Back to the home page")),
	)
	return handlers.RenderPageStatus(c, code, http.StatusText(code), view.FlashData{}, content)
}

package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorTestEcho(t *testing.T) (*echo.Echo, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{AddSource: true})))
	t.Cleanup(func() { slog.SetDefault(original) })

	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	setupErrorHandling(e)

	e.GET("/boom", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})
	e.GET("/gone", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "That quiz does not exist.")
	})
	return e, &logs
}

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	e, logs := newErrorTestEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	out := logs.String()
	assert.Contains(t, out, "Internal Server Error (Unhandled)")
	assert.Contains(t, out, `error="a deliberate unhandled error occurred"`)
	assert.Contains(t, out, "stack_trace=")
	assert.Contains(t, out, "runtime/debug/stack.go")
	// The internal error never reaches the client.
	assert.NotContains(t, rec.Body.String(), "deliberate")
}

func TestHTTPErrorHandler_PageForBrowsers(t *testing.T) {
	e, _ := newErrorTestEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/gone", nil)
	req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "404 Not Found")
	assert.Contains(t, body, "That quiz does not exist.")

	t.Run("server errors hide the message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		req.Header.Set(echo.HeaderAccept, "text/html")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "500 Internal Server Error")
	})
}

func TestHTTPErrorHandler_JSONForAPIAndHTMX(t *testing.T) {
	e, _ := newErrorTestEcho(t)

	for name, header := range map[string][2]string{
		"api":  {echo.HeaderAccept, echo.MIMEApplicationJSON},
		"htmx": {"HX-Request", "true"},
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/gone", nil)
			req.Header.Set(header[0], header[1])
			if name == "htmx" {
				req.Header.Set(echo.HeaderAccept, "text/html")
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"message":"That quiz does not exist."}`, rec.Body.String())
		})
	}
}

package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
)

// FlashData holds the messages consumed by the next rendered page.
type FlashData struct {
	Success []string
	Error   []string
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if sess == nil {
		c.Logger().Warnf("flash session unavailable: %v", err)
		return
	}
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

func toStrings(in []interface{}) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return FlashData{}
	}

	// Flashes() reads and clears in one step.
	success := sess.Flashes(flashKeySuccess)
	failure := sess.Flashes(flashKeyError)
	if len(success) > 0 || len(failure) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return FlashData{Success: toStrings(success), Error: toStrings(failure)}
}

// FirstError is the first error message, or "".
func (f FlashData) FirstError() string {
	if len(f.Error) == 0 {
		return ""
	}
	return f.Error[0]
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
)

const (
	// AuthSessionName is the cookie holding the signed-in user.
	AuthSessionName = "auth-session"
	sessionUserKey  = "user_id"

	// RememberMaxAge is how long "remember me" keeps a user signed in.
	RememberMaxAge = 30 * 24 * 60 * 60
)

func authOptions(c echo.Context, maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}

// StartSession signs user in. Without remember the cookie lasts for the
// browser session.
func StartSession(c echo.Context, user *domain.User, remember bool) error {
	sess, err := session.Get(AuthSessionName, c)
	if sess == nil {
		return fmt.Errorf("auth session: %w", err)
	}
	maxAge := 0
	if remember {
		maxAge = RememberMaxAge
	}
	sess.Options = authOptions(c, maxAge)
	sess.Values[sessionUserKey] = user.ID
	return sess.Save(c.Request(), c.Response())
}

// EndSession signs the current user out.
func EndSession(c echo.Context) error {
	sess, err := session.Get(AuthSessionName, c)
	if sess == nil {
		return fmt.Errorf("auth session: %w", err)
	}
	delete(sess.Values, sessionUserKey)
	sess.Options = authOptions(c, -1)
	return sess.Save(c.Request(), c.Response())
}

// SessionUserID returns the ID of the signed-in user.
func SessionUserID(c echo.Context) (string, bool) {
	sess, _ := session.Get(AuthSessionName, c)
	if sess == nil {
		return "", false
	}
	id, ok := sess.Values[sessionUserKey].(string)
	return id, ok && id != ""
}

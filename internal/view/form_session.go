package view

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/form"
)

const formSessionName = "form-session"

// FormSession is a form.SessionStore kept in a cookie that lives as long as
// the browser session.
type FormSession struct {
	c echo.Context
}

var _ form.SessionStore = (*FormSession)(nil)

// NewFormSession returns the form session of the current request.
func NewFormSession(c echo.Context) *FormSession {
	return &FormSession{c: c}
}

func (f *FormSession) session() (*sessions.Session, error) {
	// A cookie that fails to decode yields a fresh session, which is fine here.
	sess, err := session.Get(formSessionName, f.c)
	if sess == nil {
		return nil, err
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return sess, nil
}

// Put stores value under key.
func (f *FormSession) Put(key, value string) error {
	sess, err := f.session()
	if err != nil {
		return err
	}
	sess.Values[key] = value
	return sess.Save(f.c.Request(), f.c.Response())
}

// Take returns the value under key and deletes it.
func (f *FormSession) Take(key string) (string, bool) {
	sess, err := f.session()
	if err != nil {
		return "", false
	}
	raw, ok := sess.Values[key]
	if !ok {
		return "", false
	}
	delete(sess.Values, key)
	_ = sess.Save(f.c.Request(), f.c.Response())
	v, ok := raw.(string)
	return v, ok
}

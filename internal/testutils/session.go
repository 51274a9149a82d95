package testutils

import (
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionSecret signs the cookies of test servers.
const SessionSecret = "a-very-secret-key-for-testing-!!"

// NewSessionStore returns the cookie store test servers use.
func NewSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte(SessionSecret))
}

// UseSessions installs the session middleware on e.
func UseSessions(e *echo.Echo) {
	e.Use(session.Middleware(NewSessionStore()))
}

// Browser replays the cookies set by earlier responses, the way a browser
// would across a redirect.
type Browser struct {
	Handler http.Handler
	cookies map[string]*http.Cookie
}

// NewBrowser creates a Browser for h.
func NewBrowser(h http.Handler) *Browser {
	return &Browser{Handler: h, cookies: map[string]*http.Cookie{}}
}

// Do sends req with the stored cookies and records the new ones.
func (b *Browser) Do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.Handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rec
}

// Cookie returns the stored cookie named name.
func (b *Browser) Cookie(name string) (*http.Cookie, bool) {
	c, ok := b.cookies[name]
	return c, ok
}

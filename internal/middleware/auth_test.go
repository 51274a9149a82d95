package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

type stubUsers struct {
	domain.UserRepository
	users map[string]*domain.User
}

func (s *stubUsers) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	return s.users[id], nil
}

func setupAuthEcho(t *testing.T) *echo.Echo {
	t.Helper()
	users := &stubUsers{users: map[string]*domain.User{
		"s1": {ID: "s1", Username: "ada", Role: domain.RoleStudent},
		"t1": {ID: "t1", Username: "mrs-t", Role: domain.RoleTeacher},
	}}

	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.Use(LoadUser(users))

	// Test-only sign-in endpoint.
	e.GET("/signin/:id", func(c echo.Context) error {
		remember := c.QueryParam("remember") == "on"
		if err := StartSession(c, &domain.User{ID: c.Param("id")}, remember); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/signout", func(c echo.Context) error {
		return EndSession(c)
	})

	whoami := func(c echo.Context) error {
		user, _ := UserFromContext(c)
		return c.String(http.StatusOK, user.Username)
	}
	e.GET("/profile", whoami, Auth())
	e.GET("/teacher", whoami, Auth(), RequireRole(domain.RoleTeacher))
	return e
}

func signIn(t *testing.T, e *echo.Echo, path string) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Result().Cookies()
}

func get(e *echo.Echo, path string, cookies []*http.Cookie, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth(t *testing.T) {
	e := setupAuthEcho(t)

	t.Run("redirects visitors to login", func(t *testing.T) {
		rec := get(e, "/profile", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("htmx visitors get HX-Redirect", func(t *testing.T) {
		rec := get(e, "/profile", nil, "HX-Request", "true")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("HX-Redirect"))
	})

	t.Run("signed-in user passes", func(t *testing.T) {
		cookies := signIn(t, e, "/signin/s1")
		rec := get(e, "/profile", cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ada", rec.Body.String())
	})

	t.Run("stale session is treated as a visitor", func(t *testing.T) {
		cookies := signIn(t, e, "/signin/deleted")
		rec := get(e, "/profile", cookies)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	e := setupAuthEcho(t)

	rec := get(e, "/teacher", signIn(t, e, "/signin/s1"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = get(e, "/teacher", signIn(t, e, "/signin/t1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mrs-t", rec.Body.String())
}

func TestStartSession_Remember(t *testing.T) {
	e := setupAuthEcho(t)

	find := func(cookies []*http.Cookie) *http.Cookie {
		for _, ck := range cookies {
			if ck.Name == AuthSessionName {
				return ck
			}
		}
		return nil
	}

	plain := find(signIn(t, e, "/signin/s1"))
	require.NotNil(t, plain)
	assert.Zero(t, plain.MaxAge, "browser-session cookie")

	remembered := find(signIn(t, e, "/signin/s1?remember=on"))
	require.NotNil(t, remembered)
	assert.Equal(t, RememberMaxAge, remembered.MaxAge)
}

func TestEndSession(t *testing.T) {
	e := setupAuthEcho(t)
	cookies := signIn(t, e, "/signin/s1")

	rec := get(e, "/signout", cookies)
	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == AuthSessionName {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
)

const UserContextKey = "user"

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// LoadUser puts the signed-in user, if any, into the context. It never
// rejects a request; pages that behave differently for visitors use it.
func LoadUser(users domain.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := SessionUserID(c)
			if !ok {
				return next(c)
			}
			user, err := users.FindUserByID(c.Request().Context(), userID)
			if err != nil {
				FromContext(c.Request().Context()).Error("Failed to load session user", "user_id", userID, "error", err)
				return next(c)
			}
			if user == nil {
				// The account is gone; drop the stale session.
				_ = EndSession(c)
				return next(c)
			}
			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// Auth protects routes that require a signed-in user. It must run after
// LoadUser. Browsers are redirected to the login page; htmx requests get
// an HX-Redirect so the whole page navigates.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := UserFromContext(c); ok {
				return next(c)
			}
			if c.Request().Header.Get("HX-Request") == "true" {
				c.Response().Header().Set("HX-Redirect", LoginPath)
				return c.NoContent(http.StatusUnauthorized)
			}
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
	}
}

// RequireRole allows only users with role. It must run after Auth.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok || user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "You do not have access to this page.")
			}
			return next(c)
		}
	}
}

// UserFromContext returns the user placed in the context by LoadUser.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(UserContextKey).(*domain.User)
	return user, ok && user != nil
}

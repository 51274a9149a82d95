package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/handlers"
	"github.com/nfrund/learnhub/internal/middleware"
)

// RegisterRoutes sets up the core application routes. Feature routes are
// mounted by the modules in Boot.
func (s *Server) RegisterRoutes() {
	// Create instances of all application handlers.
	homeHandler := handlers.NewHomeHandler()
	authHandler := handlers.NewAuthHandler(s.authService())
	profileHandler := handlers.NewProfileHandler(s.Store)
	rateLimiter := middleware.RateLimiter()
	requireAuth := middleware.Auth()

	// Register routes.
	s.E.GET("/", homeHandler.HomeGet)
	s.E.GET("/features", homeHandler.FeaturesGet)

	s.E.GET("/register", authHandler.RegisterGet)
	s.E.POST("/register", authHandler.RegisterPost, rateLimiter)
	s.E.POST("/register/validate", authHandler.RegisterValidate)

	s.E.GET("/login", authHandler.LoginGet)
	s.E.GET("/login.html", authHandler.LoginHTML)
	s.E.POST("/login", authHandler.LoginPost, rateLimiter)
	s.E.POST("/login/validate", authHandler.LoginValidate)
	s.E.GET("/logout", authHandler.Logout)

	s.E.GET("/profile", profileHandler.ProfileGet, requireAuth)
	s.E.GET("/user_stats", profileHandler.UserStats, requireAuth)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}

package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/handler"
)

// RegisterRoutes registers routes that do not belong to any domain group:
// the health check and the API index.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", handler.Health)

	// Index route advertising the available endpoint groups, useful when
	// poking the API by hand.
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Welcome to Wallywood API",
			"version": "1.0.0",
			"endpoints": echo.Map{
				"health":         "/api/health",
				"auth":           "/api/auth",
				"users":          "/api/users",
				"posters":        "/api/posters",
				"genres":         "/api/genres",
				"ratings":        "/api/ratings",
				"cartlines":      "/api/cartlines",
				"genrePosterRel": "/api/genre-poster-rel",
			},
		})
	})
}

// RegisterAuth registers the unauthenticated registration and login
// endpoints under /api/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

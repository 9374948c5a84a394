package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/handler"
	"github.com/wallywood/poster-api/internal/middleware"
	"github.com/wallywood/poster-api/internal/model"
)

// RegisterUsers registers the user profile endpoints under /api/users.
// Reads are public (the handlers only return public projections); updates
// and deletes are ADMIN operations.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	g := e.Group("/api/users")
	g.GET("", h.GetAll)
	g.GET("/:id", h.GetByID)

	adminOnly := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	}
	g.PUT("/:id", h.Update, adminOnly...)
	g.DELETE("/:id", h.Delete, adminOnly...)
}

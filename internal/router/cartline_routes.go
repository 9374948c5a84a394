package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/handler"
	"github.com/wallywood/poster-api/internal/middleware"
	"github.com/wallywood/poster-api/internal/model"
)

// RegisterCartlines registers the cart endpoints under /api/cartlines.
// Every route requires a valid session token; the system-wide listing is
// further restricted to ADMIN. Users manage their own carts; no ownership
// check ties the :userId parameter to the authenticated principal.
func RegisterCartlines(e *echo.Echo, h *handler.CartlineHandler, jwtSecret string) {
	g := e.Group("/api/cartlines", middleware.JWTAuth(jwtSecret))

	// ADMIN can see all carts.
	g.GET("", h.GetAll, middleware.RequireRole(model.RoleAdmin))

	// Authenticated cart management.
	g.GET("/user/:userId", h.GetByUser)
	g.POST("", h.Add)
	g.PUT("/:userId/:posterId", h.Update)
	g.DELETE("/:userId/:posterId", h.Remove)
	g.DELETE("/user/:userId/clear", h.Clear)
}

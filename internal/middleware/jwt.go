package middleware // package middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/auth"
)

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the resolved principal into the request context. The provided
// secret must match the one used when issuing tokens. A missing, malformed,
// expired or badly-signed token is rejected with 401 before the handler
// runs; handlers behind this middleware can rely on user_id/email/role being
// present and typed (uint64, string, string).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			p, err := auth.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUserID, p.UserID)
			c.Set(CtxEmail, p.Email)
			c.Set(CtxRole, p.Role)
			return next(c)
		}
	}
}

package middleware

// identity.go holds helpers shared across the middleware in this package.
// currentUserID feeds the rate limiter's per-user bucket keys.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user id stored by JWTAuth as a
// string, or "anon" for unauthenticated requests.
func currentUserID(c echo.Context) string {
	if v, ok := c.Get(CtxUserID).(uint64); ok && v != 0 {
		return strconv.FormatUint(v, 10)
	}
	return "anon"
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func roleContext(role any) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(CtxRole, role)
	}
	return c, rec
}

func TestRequireRoleAllows(t *testing.T) {
	c, rec := roleContext("ADMIN")
	called := false
	handler := RequireRole("ADMIN")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got code=%d called=%v", rec.Code, called)
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	// Exact match only: a USER token does not pass an ADMIN gate and an
	// ADMIN token would not pass a USER-only gate either.
	c, rec := roleContext("USER")
	handler := RequireRole("ADMIN")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	c, rec := roleContext(nil)
	handler := RequireRole("ADMIN")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/auth"
)

const testSecret = "middleware-test-secret"

func newContext(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := auth.NewSessionToken(testSecret, 9, "sam@example.com", "USER", 1)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	c, rec := newContext(t, tok.Token)

	called := false
	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		called = true
		if got, ok := c.Get(CtxUserID).(uint64); !ok || got != 9 {
			t.Fatalf("user_id = %#v, want 9", c.Get(CtxUserID))
		}
		if c.Get(CtxEmail) != "sam@example.com" {
			t.Fatalf("email not set")
		}
		if c.Get(CtxRole) != "USER" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJWTAuthMissingToken(t *testing.T) {
	c, rec := newContext(t, "")

	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := auth.NewSessionToken(testSecret, 9, "sam@example.com", "USER", -1)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	c, rec := newContext(t, tok.Token)

	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthWrongSignature(t *testing.T) {
	tok, err := auth.NewSessionToken("other-secret", 9, "sam@example.com", "USER", 1)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	c, rec := newContext(t, tok.Token)

	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

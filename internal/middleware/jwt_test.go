package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	authpkg "github.com/honeilabs/hap-intel/api/internal/auth"
)

func TestJWT(t *testing.T) {
	e := echo.New()
	manager := authpkg.NewJWTManager("test-secret", time.Hour)

	newContext := func(header string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("missing header", func(t *testing.T) {
		c, rec := newContext("")
		_ = JWT(manager)(okHandler)(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		c, rec := newContext("Token abc")
		_ = JWT(manager)(okHandler)(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		c, rec := newContext("Bearer not-a-token")
		_ = JWT(manager)(okHandler)(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := authpkg.NewJWTManager("other-secret", time.Hour)
		token, err := other.GenerateToken("id", "ana@honei.app")
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}

		c, rec := newContext("Bearer " + token)
		_ = JWT(manager)(okHandler)(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token stores analyst metadata", func(t *testing.T) {
		token, err := manager.GenerateToken("analyst-1", "ana@honei.app")
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}

		c, rec := newContext("Bearer " + token)
		if err := JWT(manager)(okHandler)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if c.Get(ContextKeyAnalystID) != "analyst-1" {
			t.Fatalf("expected analyst id in context, got %v", c.Get(ContextKeyAnalystID))
		}
		if c.Get(ContextKeyAnalystEmail) != "ana@honei.app" {
			t.Fatalf("expected analyst email in context, got %v", c.Get(ContextKeyAnalystEmail))
		}
	})
}

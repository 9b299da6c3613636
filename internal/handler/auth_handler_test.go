package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/honeilabs/hap-intel/api/internal/auth"
	"github.com/honeilabs/hap-intel/api/internal/dto"
	"github.com/honeilabs/hap-intel/api/internal/entity"
	"github.com/honeilabs/hap-intel/api/internal/repository"
	"github.com/honeilabs/hap-intel/api/internal/service"
)

type stubAnalystsRepo struct {
	findByEmail func(ctx context.Context, email string) (*entity.Analyst, error)
}

func (s *stubAnalystsRepo) FindByEmail(ctx context.Context, email string) (*entity.Analyst, error) {
	if s.findByEmail != nil {
		return s.findByEmail(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (s *stubAnalystsRepo) Create(ctx context.Context, email, passwordHash string) (*entity.Analyst, error) {
	return nil, errors.New("not implemented")
}

func newAuthHandler(t *testing.T, repo repository.AnalystsRepository) *AuthHandler {
	t.Helper()
	jwtManager := auth.NewJWTManager("test-secret", 0)
	return NewAuthHandler(service.NewAuthService(repo, jwtManager), nil)
}

func TestAuthHandler_Login(t *testing.T) {
	e := echo.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)

	loginContext := func(body string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("invalid payload", func(t *testing.T) {
		handler := newAuthHandler(t, &stubAnalystsRepo{})

		c, rec := loginContext("{")
		_ = handler.Login(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := newAuthHandler(t, &stubAnalystsRepo{})

		c, rec := loginContext(`{"email":"","password":""}`)
		_ = handler.Login(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		handler := newAuthHandler(t, &stubAnalystsRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.Analyst, error) {
				return &entity.Analyst{ID: uuid.New(), Email: email, PasswordHash: string(hashed)}, nil
			},
		})

		c, rec := loginContext(`{"email":"ana@honei.app","password":"wrong"}`)
		_ = handler.Login(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		handler := newAuthHandler(t, &stubAnalystsRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.Analyst, error) {
				return nil, errors.New("db down")
			},
		})

		c, rec := loginContext(`{"email":"ana@honei.app","password":"secret"}`)
		_ = handler.Login(c)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		handler := newAuthHandler(t, &stubAnalystsRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.Analyst, error) {
				return &entity.Analyst{ID: uuid.New(), Email: email, PasswordHash: string(hashed)}, nil
			},
		})

		c, rec := loginContext(`{"email":"ana@honei.app","password":"secret"}`)
		_ = handler.Login(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp dto.LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if resp.AccessToken == "" {
			t.Fatal("expected an access token")
		}
	})
}

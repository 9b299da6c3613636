package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/honeilabs/hap-intel/api/internal/dto"
	"github.com/honeilabs/hap-intel/api/internal/service"
)

// AuthHandler exposes analyst login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "email and password are required")
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		h.logger.Error("login failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "could not process login")
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token})
}

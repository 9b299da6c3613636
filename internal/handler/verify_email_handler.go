package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/honeilabs/hap-intel/api/internal/dto"
	"github.com/honeilabs/hap-intel/api/internal/entity"
	"github.com/honeilabs/hap-intel/api/internal/service"
)

// EmailChecker abstracts the reputation lookup service.
type EmailChecker interface {
	Verify(ctx context.Context, email string) (*entity.EmailVerificationResult, error)
}

// VerifyEmailHandler serves the email deliverability endpoint.
type VerifyEmailHandler struct {
	verifier EmailChecker
	logger   *zap.Logger
}

// NewVerifyEmailHandler constructs a verify-email handler.
func NewVerifyEmailHandler(verifier EmailChecker, logger *zap.Logger) *VerifyEmailHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VerifyEmailHandler{verifier: verifier, logger: logger}
}

// Verify handles POST /api/verify-email.
func (h *VerifyEmailHandler) Verify(c echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Email is required")
	}

	result, err := h.verifier.Verify(c.Request().Context(), strings.TrimSpace(req.Email))
	if err != nil {
		return h.verifyError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// verifyError maps lookup failures. Unlike the research endpoint, a
// provider failure forwards the provider's own status code; the front-end
// relies on that.
func (h *VerifyEmailHandler) verifyError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrEmailRequired):
		return Error(c, http.StatusBadRequest, "Email is required")
	case errors.Is(err, service.ErrMissingVerifierCredential):
		return Error(c, http.StatusInternalServerError, "API key not configured")
	}

	var provider *service.ReputationError
	if errors.As(err, &provider) {
		h.logger.Warn("email reputation provider failure", zap.Int("status", provider.Status))
		return Error(c, provider.Status, "Email verification failed")
	}

	h.logger.Error("email verification failed", zap.Error(err))
	return Error(c, http.StatusInternalServerError, "Internal server error")
}

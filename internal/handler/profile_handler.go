package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/honeilabs/hap-intel/api/internal/dto"
	"github.com/honeilabs/hap-intel/api/internal/gemini"
	"github.com/honeilabs/hap-intel/api/internal/repository"
)

// missingCredentialMessage tells the operator exactly what to fix; it is
// intentionally verbose because it surfaces on user screens in staging.
const missingCredentialMessage = "Missing GEMINI_API_KEY (or API_KEY). Configure it in the deployment environment (Preview + Production)."

// historySaveTimeout bounds the best-effort persistence write so a slow
// database can never delay the profile response noticeably.
const historySaveTimeout = 5 * time.Second

// ProfileResearcher abstracts the OSINT research service.
type ProfileResearcher interface {
	Research(ctx context.Context, businessName, city string) (map[string]any, error)
}

// ProfileHandler serves the business-profile research endpoint.
type ProfileHandler struct {
	service ProfileResearcher
	history repository.HistoryRepository
	logger  *zap.Logger
}

// NewProfileHandler constructs a profile handler. history may be nil when
// the service runs without persistence.
func NewProfileHandler(service ProfileResearcher, history repository.HistoryRepository, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{service: service, history: history, logger: logger}
}

// Research handles POST /api/business-profile.
func (h *ProfileHandler) Research(c echo.Context) error {
	var req dto.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Missing businessName/city")
	}

	businessName := strings.TrimSpace(req.ResolvedBusinessName())
	city := strings.TrimSpace(req.ResolvedCity())
	if businessName == "" || city == "" {
		return Error(c, http.StatusBadRequest, "Missing businessName/city")
	}

	profile, err := h.service.Research(c.Request().Context(), businessName, city)
	if err != nil {
		return h.researchError(c, businessName, city, err)
	}

	h.saveHistory(businessName, city, profile)

	return c.JSON(http.StatusOK, profile)
}

// researchError maps service failures onto the endpoint's error contract:
// 500 for everything, with the most specific message available. Upstream
// status codes are deliberately not forwarded on this endpoint.
func (h *ProfileHandler) researchError(c echo.Context, businessName, city string, err error) error {
	h.logger.Error("profile research failed",
		zap.String("business_name", businessName),
		zap.String("city", city),
		zap.Error(err),
	)

	if errors.Is(err, gemini.ErrMissingCredential) {
		return Error(c, http.StatusInternalServerError, missingCredentialMessage)
	}

	var upstream *gemini.UpstreamError
	if errors.As(err, &upstream) {
		return Error(c, http.StatusInternalServerError, upstream.Message)
	}

	return Error(c, http.StatusInternalServerError, err.Error())
}

// saveHistory persists the result best-effort; a storage failure is logged
// and never fails the response. The write runs on a fresh context so a
// client disconnect after the research completes does not cancel it.
func (h *ProfileHandler) saveHistory(businessName, city string, profile map[string]any) {
	if h.history == nil {
		return
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		h.logger.Warn("could not marshal profile for history", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), historySaveTimeout)
	defer cancel()

	if err := h.history.Save(ctx, businessName, city, raw); err != nil {
		h.logger.Warn("could not persist search history",
			zap.String("business_name", businessName),
			zap.String("city", city),
			zap.Error(err),
		)
	}
}

package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/honeilabs/hap-intel/api/internal/entity"
	"github.com/honeilabs/hap-intel/api/internal/repository"
)

// HistoryHandler serves the persisted search-history endpoints.
type HistoryHandler struct {
	history repository.HistoryRepository
	logger  *zap.Logger
}

// NewHistoryHandler constructs a history handler.
func NewHistoryHandler(history repository.HistoryRepository, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{history: history, logger: logger}
}

// List handles GET /api/history.
func (h *HistoryHandler) List(c echo.Context) error {
	entries, err := h.history.List(c.Request().Context())
	if err != nil {
		h.logger.Error("list history failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "could not load search history")
	}
	if entries == nil {
		entries = []entity.HistoryEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// Delete handles DELETE /api/history/:id.
func (h *HistoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid history id")
	}

	if err := h.history.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrHistoryEntryNotFound {
			return Error(c, http.StatusNotFound, "history entry not found")
		}
		h.logger.Error("delete history entry failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "could not delete history entry")
	}

	return c.NoContent(http.StatusNoContent)
}

// Clear handles DELETE /api/history.
func (h *HistoryHandler) Clear(c echo.Context) error {
	if err := h.history.Clear(c.Request().Context()); err != nil {
		h.logger.Error("clear history failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "could not clear history")
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportCSV handles GET /api/history/export.csv, mirroring the columns the
// front-end offers in its clipboard/CSV export.
func (h *HistoryHandler) ExportCSV(c echo.Context) error {
	entries, err := h.history.List(c.Request().Context())
	if err != nil {
		h.logger.Error("export history failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "could not export search history")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="search-history.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"business_name", "city", "score", "phone", "website", "top_decision_maker", "updated_at"}); err != nil {
		return err
	}

	for _, entry := range entries {
		var profile entity.BusinessProfile
		// Stored payloads are lenient JSON; decode what fits, leave the rest zero.
		_ = json.Unmarshal(entry.Profile, &profile)

		topContact := ""
		if len(profile.DecisionMakers) > 0 {
			topContact = fmt.Sprintf("%s (%s)", profile.DecisionMakers[0].Name, profile.DecisionMakers[0].Role)
		}

		record := []string{
			entry.BusinessName,
			entry.City,
			strconv.FormatFloat(profile.Score, 'f', -1, 64),
			profile.Contact.Phone,
			profile.Contact.Website,
			topContact,
			entry.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

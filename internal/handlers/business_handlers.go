package handlers

import (
	"errors"
	"net/http"

	"panditconnect/internal/common"
	"panditconnect/internal/models"
	"panditconnect/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MaxAppFileBytes caps the decoded size of an uploaded app package. The cap is
// policy of the HTTP boundary; the services below it enforce no limit.
const MaxAppFileBytes int64 = 50 << 20

// BusinessHandlers handles the public business record and the admin edit form.
type BusinessHandlers struct {
	businessSvc services.BusinessService
	logger      *zap.Logger
}

func NewBusinessHandlers(businessSvc services.BusinessService, logger *zap.Logger) *BusinessHandlers {
	return &BusinessHandlers{
		businessSvc: businessSvc,
		logger:      logger,
	}
}

// GetBusiness serves the landing-page payload. It never fails: the service
// falls back to the cached record, then to the defaults.
func (h *BusinessHandlers) GetBusiness(c echo.Context) error {
	record := h.businessSvc.Load(c.Request().Context())
	return c.JSON(http.StatusOK, record)
}

// UpdateBusiness replaces the business record. A freshly attached app file
// travels inline as a base64 data URI and is size-checked here, before any
// store call.
func (h *BusinessHandlers) UpdateBusiness(c echo.Context) error {
	var record models.BusinessRecord
	if err := c.Bind(&record); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if record.AppFile != nil && record.AppFile.Data != "" {
		size, err := services.InlineSize(record.AppFile.Data)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformed app file payload")
		}
		if size > MaxAppFileBytes {
			h.logger.Warn("app file rejected", zap.Int64("size", size), zap.Error(common.ErrFileTooLarge))
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "App file must be 50 MB or smaller")
		}
	}

	saved, err := h.businessSvc.Save(c.Request().Context(), &record)
	if err != nil {
		if errors.Is(err, common.ErrDecode) {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformed app file payload")
		}
		h.logger.Error("failed to save business record", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save business profile")
	}
	return c.JSON(http.StatusOK, saved)
}

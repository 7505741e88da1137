package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"admindash/internal/auth"
	"admindash/internal/service"
)

// AnalyticsHandler serves dashboard statistics.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// AdminStats godoc
// @Summary Admin statistics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AdminStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /analytics/admins [get]
func (h *AnalyticsHandler) AdminStats(c echo.Context, _ *auth.Identity) error {
	stats, err := h.analyticsService.AdminStats(c.Request().Context())
	if err != nil {
		return handleError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

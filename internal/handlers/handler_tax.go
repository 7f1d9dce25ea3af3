package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/dallyhq/dally_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxHandler handles HTTP requests for tax estimates.
type taxHandler struct {
	taxService      portssvc.TaxSvcFacade
	businessService portssvc.BusinessSvcFacade
}

// newTaxHandler creates a new taxHandler.
func newTaxHandler(ts portssvc.TaxSvcFacade, bs portssvc.BusinessSvcFacade) *taxHandler {
	return &taxHandler{
		taxService:      ts,
		businessService: bs,
	}
}

// registerTaxRoutes registers routes related to tax estimates.
func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade, businessService portssvc.BusinessSvcFacade) {
	h := newTaxHandler(taxService, businessService)

	tax := rg.Group("/tax")
	{
		tax.GET("/summary", h.taxSummary)
	}
}

// resolveTaxPeriod turns the year/month query parameters into an inclusive
// date range. A month value takes precedence over a year; with neither, the
// current calendar year is used.
func resolveTaxPeriod(c *gin.Context) (start, end time.Time, ok bool) {
	if raw := c.Query("month"); raw != "" {
		monthStart, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be a valid YYYY-MM value"})
			return time.Time{}, time.Time{}, false
		}
		return monthStart, monthStart.AddDate(0, 1, -1), true
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a valid four-digit year"})
			return time.Time{}, time.Time{}, false
		}
		year = parsed
	}
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end, true
}

// taxSummary godoc
// @Summary Tax estimate
// @Description Estimates personal income tax (and optionally VAT) from the period's profit and loss
// @Tags tax
// @Produce json
// @Param year query int false "Tax period year (defaults to the current year)"
// @Param month query string false "Tax period month (YYYY-MM); overrides year"
// @Param business_id query string false "Business to account for; defaults to the caller's first business"
// @Param vat_enabled query bool false "Include a VAT estimate on revenue" default(false)
// @Success 200 {object} dto.TaxSummaryResponse
// @Failure 400 {object} map[string]string "Invalid period values"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (business owned by another user)"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to compute tax estimate"
// @Security BearerAuth
// @Router /tax/summary [get]
func (h *taxHandler) taxSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, end, ok := resolveTaxPeriod(c)
	if !ok {
		return
	}

	vatEnabled := false
	if raw := c.Query("vat_enabled"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vat_enabled must be a boolean"})
			return
		}
		vatEnabled = parsed
	}

	mode, err := h.businessService.ResolveAccountingMode(c.Request.Context(), ownerID, optionalBusinessID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to resolve accounting mode", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute tax estimate"})
		}
		return
	}

	summary, err := h.taxService.TaxSummary(c.Request.Context(), ownerID, start, end, mode, vatEnabled)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute tax summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute tax estimate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxSummaryResponse(summary))
}

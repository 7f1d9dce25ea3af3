package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/dallyhq/dally_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// summaryHandler handles HTTP requests for the derived summary calculators.
type summaryHandler struct {
	summaryService  portssvc.SummarySvcFacade
	businessService portssvc.BusinessSvcFacade
}

// newSummaryHandler creates a new summaryHandler.
func newSummaryHandler(ss portssvc.SummarySvcFacade, bs portssvc.BusinessSvcFacade) *summaryHandler {
	return &summaryHandler{
		summaryService:  ss,
		businessService: bs,
	}
}

// registerSummaryRoutes registers routes related to summaries.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade, businessService portssvc.BusinessSvcFacade) {
	h := newSummaryHandler(summaryService, businessService)

	summaries := rg.Group("/summaries")
	{
		summaries.GET("/daily", h.dailySummary)
		summaries.GET("/range", h.rangeSummary)
		summaries.GET("/profit-loss", h.profitAndLoss)
	}
}

// optionalBusinessID reads the business_id query parameter, nil when absent.
func optionalBusinessID(c *gin.Context) *string {
	if businessID := c.Query("business_id"); businessID != "" {
		return &businessID
	}
	return nil
}

// parseDateQuery parses a required YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required (YYYY-MM-DD)"})
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a valid YYYY-MM-DD date"})
		return time.Time{}, false
	}
	return date, true
}

// dailySummary godoc
// @Summary Daily cash summary
// @Description Aggregates income and expense for a single date (default today)
// @Tags summaries
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param business_id query string false "Filter by business"
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /summaries/daily [get]
func (h *summaryHandler) dailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be a valid YYYY-MM-DD date"})
			return
		}
		date = parsed
	}

	summary, err := h.summaryService.DailySummary(c.Request.Context(), ownerID, date, optionalBusinessID(c))
	if err != nil {
		logger.Error("Failed to compute daily summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDailySummaryResponse(summary))
}

// rangeSummary godoc
// @Summary Range cash summary
// @Description Aggregates income and expense over an inclusive date range
// @Tags summaries
// @Produce json
// @Param start_date query string true "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string true "Inclusive end date (YYYY-MM-DD)"
// @Param business_id query string false "Filter by business"
// @Success 200 {object} dto.RangeSummaryResponse
// @Failure 400 {object} map[string]string "Invalid or reversed date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /summaries/range [get]
func (h *summaryHandler) rangeSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	summary, err := h.summaryService.RangeSummary(c.Request.Context(), ownerID, start, end, optionalBusinessID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute range summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRangeSummaryResponse(summary))
}

// profitAndLoss godoc
// @Summary Profit and loss statement
// @Description Computes a P&L for the range. With a business (explicit or the caller's first), COGS accounting applies; otherwise a simplified individual statement is produced.
// @Tags summaries
// @Produce json
// @Param start_date query string true "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string true "Inclusive end date (YYYY-MM-DD)"
// @Param business_id query string false "Business to account for; defaults to the caller's first business"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid or reversed date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (business owned by another user)"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to compute statement"
// @Security BearerAuth
// @Router /summaries/profit-loss [get]
func (h *summaryHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	mode, err := h.businessService.ResolveAccountingMode(c.Request.Context(), ownerID, optionalBusinessID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to resolve accounting mode", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statement"})
		}
		return
	}

	statement, err := h.summaryService.ProfitAndLoss(c.Request.Context(), ownerID, start, end, mode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute profit and loss", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(statement))
}

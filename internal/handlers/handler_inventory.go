package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dallyhq/dally_backend/internal/apperrors"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/dallyhq/dally_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inventoryHandler handles HTTP requests related to inventory periods.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
	businessService  portssvc.BusinessSvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(is portssvc.InventorySvcFacade, bs portssvc.BusinessSvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: is,
		businessService:  bs,
	}
}

// registerInventoryRoutes registers inventory period routes, nested under the
// owning business.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade, businessService portssvc.BusinessSvcFacade) {
	h := newInventoryHandler(inventoryService, businessService)

	periods := rg.Group("/businesses/:id/inventory-periods")
	{
		periods.PUT("", h.upsertInventoryPeriod)
		periods.GET("", h.listInventoryPeriods)
		periods.DELETE("/:periodID", h.deleteInventoryPeriod)
	}
}

// upsertInventoryPeriod godoc
// @Summary Record an inventory snapshot
// @Description Records or corrects the closing stock value for a period end date
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param period body dto.UpsertInventoryPeriodRequest true "Snapshot details"
// @Success 200 {object} dto.InventoryPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (business owned by another user)"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to record inventory period"
// @Security BearerAuth
// @Router /businesses/{id}/inventory-periods [put]
func (h *inventoryHandler) upsertInventoryPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("id")

	var req dto.UpsertInventoryPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for upsertInventoryPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.inventoryService.UpsertInventoryPeriod(c.Request.Context(), ownerID, businessID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to upsert inventory period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record inventory period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryPeriodResponse(*period))
}

// listInventoryPeriods godoc
// @Summary List inventory snapshots
// @Description Retrieves a business's inventory periods, newest first
// @Tags inventory
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {array} dto.InventoryPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (business owned by another user)"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to list inventory periods"
// @Security BearerAuth
// @Router /businesses/{id}/inventory-periods [get]
func (h *inventoryHandler) listInventoryPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("id")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.inventoryService.ListInventoryPeriods(c.Request.Context(), ownerID, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to list inventory periods", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inventory periods"})
		}
		return
	}

	resp := make([]dto.InventoryPeriodResponse, len(periods))
	for i, period := range periods {
		resp[i] = dto.ToInventoryPeriodResponse(period)
	}
	c.JSON(http.StatusOK, resp)
}

// deleteInventoryPeriod godoc
// @Summary Delete an inventory snapshot
// @Description Removes one recorded inventory period
// @Tags inventory
// @Param id path string true "Business ID"
// @Param periodID path string true "Inventory Period ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (business owned by another user)"
// @Failure 404 {object} map[string]string "Business or period not found"
// @Failure 500 {object} map[string]string "Failed to delete inventory period"
// @Security BearerAuth
// @Router /businesses/{id}/inventory-periods/{periodID} [delete]
func (h *inventoryHandler) deleteInventoryPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("id")
	periodID := c.Param("periodID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.inventoryService.DeleteInventoryPeriod(c.Request.Context(), ownerID, businessID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory period not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to delete inventory period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory period"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

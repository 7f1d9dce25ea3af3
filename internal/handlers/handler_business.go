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

// businessHandler handles HTTP requests related to businesses.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

// newBusinessHandler creates a new businessHandler.
func newBusinessHandler(bs portssvc.BusinessSvcFacade) *businessHandler {
	return &businessHandler{
		businessService: bs,
	}
}

// registerBusinessRoutes registers routes related to businesses.
func registerBusinessRoutes(rg *gin.RouterGroup, businessService portssvc.BusinessSvcFacade) {
	h := newBusinessHandler(businessService)

	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.createBusiness)
		businesses.GET("", h.listBusinesses)
		businesses.GET("/:id", h.getBusiness)
	}
}

// createBusiness godoc
// @Summary Create a new business
// @Description Registers a trading entity for the logged-in user
// @Tags businesses
// @Accept json
// @Produce json
// @Param business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create business"
// @Security BearerAuth
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBusiness", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), ownerID, req)
	if err != nil {
		logger.Error("Failed to create business in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBusinessResponse(*business))
}

// getBusiness godoc
// @Summary Get a business by ID
// @Description Retrieves one of the caller's businesses
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (owned by another user)"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to retrieve business"
// @Security BearerAuth
// @Router /businesses/{id} [get]
func (h *businessHandler) getBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("id")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), ownerID, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get business from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve business"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(*business))
}

// listBusinesses godoc
// @Summary List businesses
// @Description Retrieves the caller's businesses, oldest first
// @Tags businesses
// @Produce json
// @Success 200 {array} dto.BusinessResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list businesses"
// @Security BearerAuth
// @Router /businesses [get]
func (h *businessHandler) listBusinesses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	businesses, err := h.businessService.ListBusinesses(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list businesses from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list businesses"})
		return
	}

	resp := make([]dto.BusinessResponse, len(businesses))
	for i, business := range businesses {
		resp[i] = dto.ToBusinessResponse(business)
	}
	c.JSON(http.StatusOK, resp)
}

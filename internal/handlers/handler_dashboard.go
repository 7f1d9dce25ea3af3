package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
	"github.com/dallyhq/dally_backend/internal/dto"
	"github.com/dallyhq/dally_backend/internal/middleware"
	"github.com/dallyhq/dally_backend/internal/platform/cache"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the aggregated home screen. Responses are cached
// under version-stamped keys; a ledger mutation bumps the owner's version and
// the next request recomputes.
type dashboardHandler struct {
	summaryService  portssvc.SummarySvcFacade
	businessService portssvc.BusinessSvcFacade
	cacheVersion    portssvc.CacheVersionSvcFacade
	responseCache   *cache.LRUCache[dto.DashboardResponse]
}

// newDashboardHandler creates a new dashboardHandler.
func newDashboardHandler(
	ss portssvc.SummarySvcFacade,
	bs portssvc.BusinessSvcFacade,
	cv portssvc.CacheVersionSvcFacade,
	responseCache *cache.LRUCache[dto.DashboardResponse],
) *dashboardHandler {
	return &dashboardHandler{
		summaryService:  ss,
		businessService: bs,
		cacheVersion:    cv,
		responseCache:   responseCache,
	}
}

// registerDashboardRoutes registers the dashboard route.
func registerDashboardRoutes(
	rg *gin.RouterGroup,
	summaryService portssvc.SummarySvcFacade,
	businessService portssvc.BusinessSvcFacade,
	cacheVersion portssvc.CacheVersionSvcFacade,
	responseCache *cache.LRUCache[dto.DashboardResponse],
) {
	h := newDashboardHandler(summaryService, businessService, cacheVersion, responseCache)
	rg.GET("/dashboard", h.dashboard)
}

// dashboard godoc
// @Summary Dashboard
// @Description Returns the caller's first business and rolling activity for today, the last 7 days and the last 30 days
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	today := time.Now()

	// Cache lookup keyed by the owner's current version. A failed version
	// read skips the cache rather than failing the request.
	cacheKey := ""
	if h.responseCache != nil {
		version, err := h.cacheVersion.Version(c.Request.Context(), ownerID)
		if err != nil {
			logger.Warn("Failed to read cache version, bypassing cache", slog.String("error", err.Error()))
		} else {
			cacheKey = fmt.Sprintf("dashboard:%s:v%d:%s", ownerID, version, today.Format("2006-01-02"))
			if cached, hit := h.responseCache.Get(cacheKey); hit {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	activity, err := h.summaryService.DashboardActivity(c.Request.Context(), ownerID, today)
	if err != nil {
		logger.Error("Failed to compute dashboard activity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}

	var business *domain.Business
	businesses, err := h.businessService.ListBusinesses(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list businesses for dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}
	if len(businesses) > 0 {
		business = &businesses[0]
	}

	resp := dto.ToDashboardResponse(business, activity)
	if h.responseCache != nil && cacheKey != "" {
		h.responseCache.Set(cacheKey, resp)
	}
	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"strconv"

	"github.com/alwadigroup/alwadi-backend/internal/services"
	"github.com/alwadigroup/alwadi-backend/pkg/logger"
	"github.com/alwadigroup/alwadi-backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{service: services.NewAnalyticsService(db)}
}

// SentimentStats handles GET /api/analytics/sentiment-stats.
func (h *AnalyticsHandler) SentimentStats(c *gin.Context) {
	stats, err := h.service.GetSentimentStats()
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch sentiment stats")
		response.ServerError(c, "Failed to fetch sentiment stats")
		return
	}

	response.JSON(c, stats)
}

// SentimentTrends handles GET /api/analytics/sentiment-trends?days=N.
// Anything unparseable or non-positive falls back to 30 days.
func (h *AnalyticsHandler) SentimentTrends(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}

	trends, err := h.service.GetSentimentTrends(days)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch sentiment trends")
		response.ServerError(c, "Failed to fetch sentiment trends")
		return
	}

	response.JSON(c, trends)
}

// ResponseStats handles GET /api/analytics/response-stats.
func (h *AnalyticsHandler) ResponseStats(c *gin.Context) {
	stats, err := h.service.GetResponseStats()
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch response stats")
		response.ServerError(c, "Failed to fetch response stats")
		return
	}

	response.JSON(c, stats)
}

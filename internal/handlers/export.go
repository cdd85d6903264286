package handlers

import (
	"github.com/alwadigroup/alwadi-backend/internal/services"
	"github.com/alwadigroup/alwadi-backend/pkg/logger"
	"github.com/alwadigroup/alwadi-backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportHandler struct {
	service *services.FeedbackService
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{service: services.NewFeedbackService(db)}
}

// Feedback handles GET /api/export/feedback: a CSV attachment of all
// feedback, newest first, in the contractual column order.
func (h *ExportHandler) Feedback(c *gin.Context) {
	feedback, err := h.service.GetAllFeedback()
	if err != nil {
		logger.Error().Err(err).Msg("failed to export feedback")
		response.ServerError(c, "Failed to export feedback")
		return
	}

	csv := services.BuildFeedbackCSV(feedback)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="feedback-export.csv"`)
	c.String(200, csv)
}

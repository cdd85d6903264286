package handlers

import (
	"errors"
	"strconv"

	"github.com/alwadigroup/alwadi-backend/internal/services"
	"github.com/alwadigroup/alwadi-backend/pkg/logger"
	"github.com/alwadigroup/alwadi-backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FeedbackHandler struct {
	service    *services.FeedbackService
	classifier services.Classifier
}

func NewFeedbackHandler(db *gorm.DB, classifier services.Classifier) *FeedbackHandler {
	return &FeedbackHandler{
		service:    services.NewFeedbackService(db),
		classifier: classifier,
	}
}

// CreateFeedbackRequest is the submission payload. Sentiment fields are
// never accepted from the client.
type CreateFeedbackRequest struct {
	Content       string `json:"content" binding:"required,min=10"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"omitempty,email"`
	Source        string `json:"source" binding:"required,oneof=form email sms phone chat review"`
}

// Create handles POST /api/feedback: validate, classify, resolve the
// customer, persist. The classifier call is awaited, so its round-trip
// (bounded by the adapter timeout) is part of request latency.
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid feedback data")
		return
	}

	result := h.classifier.Analyze(c.Request.Context(), req.Content)

	if req.CustomerEmail != "" {
		if _, err := h.service.FindOrCreateCustomer(req.CustomerName, req.CustomerEmail); err != nil {
			logger.Error().Err(err).Msg("failed to resolve customer")
			response.BadRequest(c, "Invalid feedback data")
			return
		}
	}

	feedback, err := h.service.CreateFeedback(services.CreateFeedbackInput{
		Content:       req.Content,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Source:        req.Source,
	}, result)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create feedback")
		response.BadRequest(c, "Invalid feedback data")
		return
	}

	// Recount after the record exists so the submission counts itself.
	if req.CustomerEmail != "" {
		if err := h.service.UpdateCustomerStats(req.CustomerEmail); err != nil {
			logger.Error().Err(err).Msg("failed to update customer stats")
		}
	}

	response.JSON(c, feedback)
}

// List handles GET /api/feedback: all records, newest first.
func (h *FeedbackHandler) List(c *gin.Context) {
	feedback, err := h.service.GetAllFeedback()
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch feedback")
		response.ServerError(c, "Failed to fetch feedback")
		return
	}

	response.JSON(c, feedback)
}

// UpdateResponseRequest toggles the responded flag. A pointer keeps
// "missing" distinguishable from an explicit false.
type UpdateResponseRequest struct {
	IsResponded *bool `json:"isResponded" binding:"required"`
}

// Respond handles PATCH /api/feedback/:id/respond.
func (h *FeedbackHandler) Respond(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid feedback data")
		return
	}

	var req UpdateResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid feedback data")
		return
	}

	feedback, err := h.service.UpdateFeedbackResponse(uint(id), *req.IsResponded)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Feedback not found")
			return
		}
		logger.Error().Err(err).Msg("failed to update feedback response")
		response.ServerError(c, "Failed to update feedback response")
		return
	}

	response.JSON(c, feedback)
}

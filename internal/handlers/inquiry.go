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

type InquiryHandler struct {
	service *services.InquiryService
}

func NewInquiryHandler(db *gorm.DB) *InquiryHandler {
	return &InquiryHandler{service: services.NewInquiryService(db)}
}

type CreateInquiryRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	BusinessType string `json:"businessType" binding:"required,oneof=spices travel business_formation"`
	Subject      string `json:"subject" binding:"required"`
	Message      string `json:"message" binding:"required"`
}

// Create handles POST /api/inquiries (public contact form).
func (h *InquiryHandler) Create(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid inquiry data")
		return
	}

	inquiry, err := h.service.CreateInquiry(services.CreateInquiryInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessType: req.BusinessType,
		Subject:      req.Subject,
		Message:      req.Message,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create inquiry")
		response.BadRequest(c, "Invalid inquiry data")
		return
	}

	response.Created(c, inquiry)
}

// List handles GET /api/inquiries[?businessType=...] (admin).
func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.service.GetAllInquiries(c.Query("businessType"))
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch inquiries")
		response.ServerError(c, "Failed to fetch inquiries")
		return
	}

	response.JSON(c, inquiries)
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new contacted closed"`
}

// UpdateStatus handles PATCH /api/inquiries/:id/status (admin).
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid inquiry data")
		return
	}

	var req UpdateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid inquiry data")
		return
	}

	inquiry, err := h.service.UpdateInquiryStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Inquiry not found")
			return
		}
		logger.Error().Err(err).Msg("failed to update inquiry status")
		response.ServerError(c, "Failed to update inquiry status")
		return
	}

	response.JSON(c, inquiry)
}

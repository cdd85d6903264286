package services

import (
	"fmt"

	"github.com/alwadigroup/alwadi-backend/internal/models"
	"gorm.io/gorm"
)

// InquiryService handles contact-form submissions for the three
// business lines and their back-office workflow.
type InquiryService struct {
	db *gorm.DB
}

func NewInquiryService(db *gorm.DB) *InquiryService {
	return &InquiryService{db: db}
}

type CreateInquiryInput struct {
	Name         string
	Email        string
	Phone        string
	BusinessType string
	Subject      string
	Message      string
}

// CreateInquiry stores a new inquiry with status "new".
func (s *InquiryService) CreateInquiry(input CreateInquiryInput) (*models.Inquiry, error) {
	inquiry := models.Inquiry{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		BusinessType: input.BusinessType,
		Subject:      input.Subject,
		Message:      input.Message,
		Status:       models.InquiryStatusNew,
	}

	if err := s.db.Create(&inquiry).Error; err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return &inquiry, nil
}

// GetAllInquiries returns all inquiries newest first, optionally
// filtered by business type.
func (s *InquiryService) GetAllInquiries(businessType string) ([]models.Inquiry, error) {
	query := s.db.Order("created_at DESC, id DESC")
	if businessType != "" {
		query = query.Where("business_type = ?", businessType)
	}

	var inquiries []models.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inquiries, nil
}

// UpdateInquiryStatus moves an inquiry through the new/contacted/closed
// workflow. Returns gorm.ErrRecordNotFound for unknown ids.
func (s *InquiryService) UpdateInquiryStatus(id uint, status string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := s.db.First(&inquiry, id).Error; err != nil {
		return nil, err
	}

	inquiry.Status = status
	if err := s.db.Model(&inquiry).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update inquiry status: %w", err)
	}
	return &inquiry, nil
}

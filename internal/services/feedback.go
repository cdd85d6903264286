package services

import (
	"fmt"
	"time"

	"github.com/alwadigroup/alwadi-backend/internal/models"
	"gorm.io/gorm"
)

// FeedbackService owns the feedback and customer tables. No other
// component writes to them.
type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// CreateFeedbackInput is the validated submission payload. The
// classifier result is merged in at persistence time, never supplied
// by the caller.
type CreateFeedbackInput struct {
	Content       string
	CustomerName  string
	CustomerEmail string
	Source        string
}

// CreateFeedback persists a new record with the classifier's result
// merged in. IDs are sequential, IsResponded starts false. The source
// check guards callers that bypass request binding.
func (s *FeedbackService) CreateFeedback(input CreateFeedbackInput, result SentimentResult) (*models.Feedback, error) {
	if !models.ValidSource(input.Source) {
		return nil, fmt.Errorf("invalid feedback source: %s", input.Source)
	}

	feedback := models.Feedback{
		Content:       input.Content,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Source:        input.Source,
		Sentiment:     result.Sentiment,
		Confidence:    result.Confidence,
		Rating:        result.Rating,
		IsResponded:   false,
	}

	if err := s.db.Create(&feedback).Error; err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return &feedback, nil
}

// GetAllFeedback returns every record newest first. The ordering is a
// contract with the dashboard, not incidental; id breaks ties between
// records created within the same timestamp granularity.
func (s *FeedbackService) GetAllFeedback() ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := s.db.Order("created_at DESC, id DESC").Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return feedback, nil
}

// GetFeedbackByDateRange returns records with createdAt in [start, end].
func (s *FeedbackService) GetFeedbackByDateRange(start, end time.Time) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := s.db.
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at DESC, id DESC").
		Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("list feedback by range: %w", err)
	}
	return feedback, nil
}

// UpdateFeedbackResponse toggles only the responded flag. The first
// transition to true stamps RespondedAt, which feeds the response-time
// metric. Returns gorm.ErrRecordNotFound for unknown ids.
func (s *FeedbackService) UpdateFeedbackResponse(id uint, isResponded bool) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.db.First(&feedback, id).Error; err != nil {
		return nil, err
	}

	feedback.IsResponded = isResponded
	if isResponded && feedback.RespondedAt == nil {
		now := time.Now()
		feedback.RespondedAt = &now
	}

	if err := s.db.Model(&feedback).
		Select("is_responded", "responded_at").
		Updates(map[string]interface{}{
			"is_responded": feedback.IsResponded,
			"responded_at": feedback.RespondedAt,
		}).Error; err != nil {
		return nil, fmt.Errorf("update feedback response: %w", err)
	}

	return &feedback, nil
}

// FindOrCreateCustomer resolves the customer for an email, creating it
// with the submitted name on first contact. The unique index on email
// plus a lookup retry makes concurrent first submissions converge on a
// single row.
func (s *FeedbackService) FindOrCreateCustomer(name, email string) (*models.Customer, error) {
	customer := models.Customer{Email: email}
	err := s.db.Where("email = ?", email).
		Attrs(models.Customer{Name: name}).
		FirstOrCreate(&customer).Error
	if err != nil {
		// Likely lost the insert race on the unique index; re-read.
		var existing models.Customer
		if lookupErr := s.db.Where("email = ?", email).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("find or create customer: %w", err)
	}
	return &customer, nil
}

// GetCustomerByEmail returns the customer with that exact email, or
// gorm.ErrRecordNotFound.
func (s *FeedbackService) GetCustomerByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomerStats recounts all feedback for the email and stamps
// the last-activity time. A full recount per submission is fine at
// this volume.
func (s *FeedbackService) UpdateCustomerStats(email string) error {
	var total int64
	if err := s.db.Model(&models.Feedback{}).
		Where("customer_email = ?", email).
		Count(&total).Error; err != nil {
		return fmt.Errorf("count feedback for customer: %w", err)
	}

	now := time.Now()
	if err := s.db.Model(&models.Customer{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"total_feedback":   total,
			"last_feedback_at": &now,
		}).Error; err != nil {
		return fmt.Errorf("update customer stats: %w", err)
	}
	return nil
}

package models

import (
	"time"
)

// Feedback sources accepted from the collection form.
const (
	SourceForm   = "form"
	SourceEmail  = "email"
	SourceSMS    = "sms"
	SourcePhone  = "phone"
	SourceChat   = "chat"
	SourceReview = "review"
)

// Sentiment labels assigned by the classifier. A stored record always
// carries one of these; there is no "unclassified" state.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Inquiry statuses.
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Feedback is one piece of customer-submitted text plus its derived
// sentiment classification. Only IsResponded (and its timestamp) may
// change after creation.
type Feedback struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	CustomerName  string     `gorm:"size:200;not null" json:"customerName"`
	CustomerEmail string     `gorm:"size:255;index" json:"customerEmail"`
	Source        string     `gorm:"size:20;not null" json:"source"`
	Sentiment     string     `gorm:"size:20;not null" json:"sentiment"`
	Confidence    float64    `gorm:"not null" json:"confidence"`
	Rating        *int       `json:"rating,omitempty"`
	IsResponded   bool       `gorm:"default:false" json:"isResponded"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`
}

// Customer aggregates feedback activity per email address. Name and
// email are immutable once created; only the derived stats change.
type Customer struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"size:200;not null" json:"name"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	TotalFeedback  int        `gorm:"default:0" json:"totalFeedback"`
	LastFeedbackAt *time.Time `json:"lastFeedbackAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Inquiry is a contact-form submission from one of the business lines
// (spices, travel, business_formation).
type Inquiry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	Phone        string    `gorm:"size:50" json:"phone"`
	BusinessType string    `gorm:"size:50;not null;index" json:"businessType"`
	Subject      string    `gorm:"size:500;not null" json:"subject"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Status       string    `gorm:"size:20;default:new" json:"status"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

// User is a back-office account for the inquiry desk.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string     `gorm:"size:255" json:"-"` // bcrypt hash
	Role      string     `gorm:"size:50;default:admin" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName overrides
func (Feedback) TableName() string { return "feedback" }
func (Customer) TableName() string { return "customers" }
func (Inquiry) TableName() string  { return "inquiries" }
func (User) TableName() string     { return "users" }

// ValidSource reports whether s is one of the accepted feedback sources.
func ValidSource(s string) bool {
	switch s {
	case SourceForm, SourceEmail, SourceSMS, SourcePhone, SourceChat, SourceReview:
		return true
	}
	return false
}

// ValidSentiment reports whether s is one of the three classifier labels.
func ValidSentiment(s string) bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

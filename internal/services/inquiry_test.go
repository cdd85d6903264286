package services

import (
	"errors"
	"testing"

	"github.com/alwadigroup/alwadi-backend/internal/models"
	"gorm.io/gorm"
)

func TestCreateInquiry(t *testing.T) {
	svc := NewInquiryService(setupTestDB(t))

	inquiry, err := svc.CreateInquiry(CreateInquiryInput{
		Name:         "Fatima",
		Email:        "fatima@example.com",
		Phone:        "+971501234567",
		BusinessType: "spices",
		Subject:      "Wholesale pricing",
		Message:      "Looking for bulk saffron rates for our restaurant chain",
	})
	if err != nil {
		t.Fatalf("CreateInquiry() error = %v", err)
	}

	if inquiry.ID == 0 {
		t.Error("inquiry ID not assigned")
	}
	if inquiry.Status != models.InquiryStatusNew {
		t.Errorf("Status = %s, expected %s", inquiry.Status, models.InquiryStatusNew)
	}
}

func TestGetAllInquiries_FilterByBusinessType(t *testing.T) {
	svc := NewInquiryService(setupTestDB(t))

	inputs := []CreateInquiryInput{
		{Name: "A", Email: "a@example.com", BusinessType: "spices", Subject: "s", Message: "m"},
		{Name: "B", Email: "b@example.com", BusinessType: "travel", Subject: "s", Message: "m"},
		{Name: "C", Email: "c@example.com", BusinessType: "spices", Subject: "s", Message: "m"},
	}
	for _, input := range inputs {
		if _, err := svc.CreateInquiry(input); err != nil {
			t.Fatalf("CreateInquiry() error = %v", err)
		}
	}

	all, err := svc.GetAllInquiries("")
	if err != nil {
		t.Fatalf("GetAllInquiries() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d inquiries, expected 3", len(all))
	}

	spices, err := svc.GetAllInquiries("spices")
	if err != nil {
		t.Fatalf("GetAllInquiries(spices) error = %v", err)
	}
	if len(spices) != 2 {
		t.Fatalf("got %d spices inquiries, expected 2", len(spices))
	}
	for _, inquiry := range spices {
		if inquiry.BusinessType != "spices" {
			t.Errorf("filter leaked business type %s", inquiry.BusinessType)
		}
	}

	// Newest first: C was created after A
	if spices[0].Name != "C" || spices[1].Name != "A" {
		t.Errorf("ordering = [%s, %s], expected newest first [C, A]", spices[0].Name, spices[1].Name)
	}
}

func TestUpdateInquiryStatus(t *testing.T) {
	svc := NewInquiryService(setupTestDB(t))

	created, err := svc.CreateInquiry(CreateInquiryInput{
		Name: "D", Email: "d@example.com", BusinessType: "business_formation",
		Subject: "s", Message: "m",
	})
	if err != nil {
		t.Fatalf("CreateInquiry() error = %v", err)
	}

	updated, err := svc.UpdateInquiryStatus(created.ID, models.InquiryStatusContacted)
	if err != nil {
		t.Fatalf("UpdateInquiryStatus() error = %v", err)
	}
	if updated.Status != models.InquiryStatusContacted {
		t.Errorf("Status = %s, expected %s", updated.Status, models.InquiryStatusContacted)
	}

	var stored models.Inquiry
	if err := svc.db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload inquiry: %v", err)
	}
	if stored.Status != models.InquiryStatusContacted {
		t.Errorf("persisted status = %s, expected %s", stored.Status, models.InquiryStatusContacted)
	}
}

func TestUpdateInquiryStatus_NotFound(t *testing.T) {
	svc := NewInquiryService(setupTestDB(t))

	_, err := svc.UpdateInquiryStatus(9999, models.InquiryStatusClosed)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("error = %v, expected gorm.ErrRecordNotFound", err)
	}
}

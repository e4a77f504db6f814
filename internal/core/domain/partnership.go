package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Статусы заявки на партнерство
const (
	PartnershipNew      = "new"
	PartnershipReviewed = "reviewed"
	PartnershipAccepted = "accepted"
	PartnershipRejected = "rejected"
)

var partnershipStatuses = []string{PartnershipNew, PartnershipReviewed, PartnershipAccepted, PartnershipRejected}

func IsValidPartnershipStatus(status string) bool {
	return contains(partnershipStatuses, status)
}

type PartnershipRequest struct {
	ID              uuid.UUID `json:"id"`
	CompanyName     string    `json:"companyName"`
	ContactName     string    `json:"contactName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	PartnershipType string    `json:"partnershipType"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PartnershipFilter - выборка заявок для администратора.
type PartnershipFilter struct {
	Status string
	Limit  int
	Offset int
}

// PartnershipInput - поля публичной формы заявки.
type PartnershipInput struct {
	CompanyName     string
	ContactName     string
	Email           string
	Phone           string
	PartnershipType string
	Message         string
}

func NewPartnershipRequest(input PartnershipInput, now time.Time) *PartnershipRequest {
	return &PartnershipRequest{
		ID:              uuid.New(),
		CompanyName:     strings.TrimSpace(input.CompanyName),
		ContactName:     strings.TrimSpace(input.ContactName),
		Email:           NormalizeEmail(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		PartnershipType: strings.TrimSpace(input.PartnershipType),
		Message:         strings.TrimSpace(input.Message),
		Status:          PartnershipNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

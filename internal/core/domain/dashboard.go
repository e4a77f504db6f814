package domain

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats - сводка для панели администратора.
type DashboardStats struct {
	Properties             PropertyStats `json:"properties"`
	Users                  UserStats     `json:"users"`
	NewPartnershipRequests int64         `json:"newPartnershipRequests"`
	GeneratedAt            time.Time     `json:"generatedAt"`
}

// PropertyCreatedEvent публикуется после сохранения нового объявления.
type PropertyCreatedEvent struct {
	PropertyID    uuid.UUID `json:"property_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	PromotionType string    `json:"promotion_type"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewPropertyCreatedEvent(record *PropertyRecord) PropertyCreatedEvent {
	return PropertyCreatedEvent{
		PropertyID:    record.ID,
		OwnerID:       record.OwnerID,
		Title:         record.Title,
		Price:         record.Price,
		PromotionType: record.PromotionType,
		Status:        record.Status,
		PaymentStatus: record.PaymentStatus,
		CreatedAt:     record.CreatedAt,
	}
}

// AwaitsPayment - объявление ждет подтверждения оплаты продвижения.
func (e PropertyCreatedEvent) AwaitsPayment() bool {
	return e.Status == StatusPending && e.PaymentStatus == PaymentPending
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Статусы жизненного цикла объявления
const (
	StatusActive   = "active"
	StatusPending  = "pending"
	StatusSold     = "sold"
	StatusRented   = "rented"
	StatusInactive = "inactive"
)

// Статусы оплаты продвижения
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentNone      = "none"
)

const (
	OfferingForSale = "For Sale"
	OfferingForRent = "For Rent"
)

var propertyStatuses = []string{StatusActive, StatusPending, StatusSold, StatusRented, StatusInactive}
var paymentStatuses = []string{PaymentPending, PaymentCompleted, PaymentFailed, PaymentNone}

// IsValidStatus проверяет значение по закрытому перечислению статусов.
func IsValidStatus(status string) bool {
	return contains(propertyStatuses, status)
}

// IsValidPaymentStatus проверяет значение по закрытому перечислению статусов оплаты.
func IsValidPaymentStatus(status string) bool {
	return contains(paymentStatuses, status)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

type PropertyImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PropertyRecord - объявление о недвижимости.
// Адрес хранится только во вложенной форме, плоские поля заполняются при отдаче клиенту.
type PropertyRecord struct {
	ID           uuid.UUID `json:"_id"`
	OwnerID      uuid.UUID `json:"owner"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PropertyType string    `json:"propertyType"`
	OfferingType string    `json:"offeringType"`

	Price     float64 `json:"price"`
	Area      float64 `json:"area"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms int     `json:"bathrooms"`

	Features []string `json:"features"`

	Address  Address   `json:"address"`
	Street   string    `json:"street"`
	City     string    `json:"city"`
	State    string    `json:"state"`
	Country  string    `json:"country"`
	Location *GeoPoint `json:"location,omitempty"`
	GeoCell  string    `json:"geoCell,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	PromotionType string `json:"promotionType"`

	Images []PropertyImage `json:"images"`
	Views  int64           `json:"views"`
	Likes  int64           `json:"likes"`

	Fingerprint string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SyncFlatAddress копирует вложенный адрес в плоские поля.
func (p *PropertyRecord) SyncFlatAddress() {
	p.Street = p.Address.Street
	p.City = p.Address.City
	p.State = p.Address.State
	p.Country = p.Address.Country
}

// ApplyPromotion выставляет статус, статус оплаты и тариф по результату резолвера.
func (p *PropertyRecord) ApplyPromotion(outcome PromotionOutcome) {
	p.Status = outcome.Status
	p.PaymentStatus = outcome.PaymentStatus
	p.PromotionType = outcome.PromotionType
}

// IsOwnedBy - владелец объявления или нет
func (p *PropertyRecord) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

// DuplicateProbe - параметры поиска недавнего дубликата объявления.
type DuplicateProbe struct {
	OwnerID      uuid.UUID
	Fingerprint  string
	Title        string
	Price        float64
	PropertyType string
	Since        time.Time
}

// NewDuplicateProbe строит пробу для записи, которую собираются сохранить.
func NewDuplicateProbe(record *PropertyRecord, since time.Time) DuplicateProbe {
	return DuplicateProbe{
		OwnerID:      record.OwnerID,
		Fingerprint:  record.Fingerprint,
		Title:        strings.TrimSpace(record.Title),
		Price:        record.Price,
		PropertyType: record.PropertyType,
		Since:        since,
	}
}

// StatusUpdate - административное изменение статусов.
type StatusUpdate struct {
	Status        *string
	PaymentStatus *string
}

// ListingPage - одна страница выдачи и общее количество совпадений.
type ListingPage struct {
	Records []PropertyRecord `json:"records"`
	Total   int64            `json:"total"`
}

// PropertyStats - агрегаты для панели администратора.
type PropertyStats struct {
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"byStatus"`
	ByPromotion     map[string]int64 `json:"byPromotion"`
	PendingPayments int64            `json:"pendingPayments"`
	TotalViews      int64            `json:"totalViews"`
}

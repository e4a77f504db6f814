package mongo_adapter

import (
	"addisnest-service/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// propertyDocument - форма объявления в коллекции. Идентификаторы хранятся строками.
type propertyDocument struct {
	ID           string `bson:"_id"`
	OwnerID      string `bson:"owner"`
	Title        string `bson:"title"`
	Description  string `bson:"description"`
	PropertyType string `bson:"propertyType"`
	OfferingType string `bson:"offeringType"`

	Price     float64  `bson:"price"`
	Area      float64  `bson:"area"`
	Bedrooms  int      `bson:"bedrooms"`
	Bathrooms int      `bson:"bathrooms"`
	Features  []string `bson:"features"`

	Address  addressDocument `bson:"address"`
	Location *geoDocument    `bson:"location,omitempty"`
	GeoCell  string          `bson:"geoCell,omitempty"`
	Images   []imageDocument `bson:"images"`

	Status        string `bson:"status"`
	PaymentStatus string `bson:"paymentStatus"`
	PromotionType string `bson:"promotionType"`

	Views       int64     `bson:"views"`
	Likes       int64     `bson:"likes"`
	Fingerprint string    `bson:"fingerprint"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

type addressDocument struct {
	Street  string `bson:"street"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	Country string `bson:"country"`
}

type geoDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

type imageDocument struct {
	URL     string `bson:"url"`
	Caption string `bson:"caption,omitempty"`
}

func toDocument(r *domain.PropertyRecord) propertyDocument {
	doc := propertyDocument{
		ID:            r.ID.String(),
		OwnerID:       r.OwnerID.String(),
		Title:         r.Title,
		Description:   r.Description,
		PropertyType:  r.PropertyType,
		OfferingType:  r.OfferingType,
		Price:         r.Price,
		Area:          r.Area,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Features:      append([]string{}, r.Features...),
		Address:       addressDocument(r.Address),
		GeoCell:       r.GeoCell,
		Images:        make([]imageDocument, 0, len(r.Images)),
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		PromotionType: r.PromotionType,
		Views:         r.Views,
		Likes:         r.Likes,
		Fingerprint:   r.Fingerprint,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
	if r.Location != nil {
		doc.Location = &geoDocument{Lat: r.Location.Lat, Lng: r.Location.Lng}
	}
	for _, img := range r.Images {
		doc.Images = append(doc.Images, imageDocument(img))
	}
	return doc
}

func (d propertyDocument) toRecord() (*domain.PropertyRecord, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	owner, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return nil, err
	}
	r := &domain.PropertyRecord{
		ID:            id,
		OwnerID:       owner,
		Title:         d.Title,
		Description:   d.Description,
		PropertyType:  d.PropertyType,
		OfferingType:  d.OfferingType,
		Price:         d.Price,
		Area:          d.Area,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		Features:      d.Features,
		Address:       domain.Address(d.Address),
		GeoCell:       d.GeoCell,
		Status:        d.Status,
		PaymentStatus: d.PaymentStatus,
		PromotionType: d.PromotionType,
		Views:         d.Views,
		Likes:         d.Likes,
		Fingerprint:   d.Fingerprint,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Location != nil {
		r.Location = &domain.GeoPoint{Lat: d.Location.Lat, Lng: d.Location.Lng}
	}
	for _, img := range d.Images {
		r.Images = append(r.Images, domain.PropertyImage(img))
	}
	r.SyncFlatAddress()
	return r, nil
}

package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// serverControlledFields никогда не принимаются от клиента: их выставляет сервер.
var serverControlledFields = []string{
	"_id", "id", "owner", "status", "paymentStatus",
	"views", "likes", "createdAt", "updatedAt", "fingerprint", "geoCell",
}

// StripServerControlled возвращает копию payload без полей, которыми управляет сервер.
func StripServerControlled(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, k := range serverControlledFields {
		delete(out, k)
	}
	return out
}

// NewPropertyFromPayload строит каноническую запись из сырого payload создания.
// Статусы вычисляются резолвером, адрес нормализуется, обязательные поля проверяются.
func NewPropertyFromPayload(ownerID uuid.UUID, raw map[string]any, now time.Time) (*PropertyRecord, error) {
	payload := NormalizeAddress(StripServerControlled(raw))

	var missing []string
	var invalid []string

	title, _ := stringField(payload, "title")
	if title == "" {
		missing = append(missing, "title")
	}
	propertyType, _ := stringField(payload, "propertyType")
	if propertyType == "" {
		missing = append(missing, "propertyType")
	}

	price, present, ok := numberField(payload, "price")
	switch {
	case !present:
		missing = append(missing, "price")
	case !ok:
		invalid = append(invalid, "price")
	}

	offeringRaw, _ := stringField(payload, "offeringType")
	offeringType := normalizeOfferingType(offeringRaw)
	switch {
	case offeringRaw == "":
		missing = append(missing, "offeringType")
	case offeringType == "":
		invalid = append(invalid, "offeringType")
	}

	if len(missing) > 0 {
		return nil, NewValidationError("missing required fields", missing...)
	}

	record := &PropertyRecord{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		PropertyType: propertyType,
		OfferingType: offeringType,
		Price:        price,
		Address:      ResolveAddress(payload),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	record.Description, _ = stringField(payload, "description")
	invalid = append(invalid, applyOptionalFields(record, payload)...)
	if len(invalid) > 0 {
		return nil, NewValidationError("invalid field values", invalid...)
	}

	promotion, _ := stringField(payload, "promotionType")
	record.ApplyPromotion(ResolvePromotion(promotion))

	record.Fingerprint = SubmissionFingerprint(record.OwnerID, record.Title, record.Price, record.PropertyType)
	record.GeoCell = GeoCell(record.Location)
	record.SyncFlatAddress()
	return record, nil
}

// ApplyPatch применяет частичное обновление владельца к записи.
// Статусы меняются только через резолвер, если сменился тариф.
func ApplyPatch(target *PropertyRecord, raw map[string]any, now time.Time) error {
	payload := StripServerControlled(raw)
	// работаем с копией, чтобы при ошибке запись осталась нетронутой
	next := *target
	record := &next
	var invalid []string

	if _, ok := payload["title"]; ok {
		title, _ := stringField(payload, "title")
		if title == "" {
			invalid = append(invalid, "title")
		} else {
			record.Title = title
		}
	}
	if _, ok := payload["propertyType"]; ok {
		pt, _ := stringField(payload, "propertyType")
		if pt == "" {
			invalid = append(invalid, "propertyType")
		} else {
			record.PropertyType = pt
		}
	}
	if _, ok := payload["offeringType"]; ok {
		value, _ := stringField(payload, "offeringType")
		if ot := normalizeOfferingType(value); ot == "" {
			invalid = append(invalid, "offeringType")
		} else {
			record.OfferingType = ot
		}
	}
	if price, present, ok := numberField(payload, "price"); present {
		if !ok {
			invalid = append(invalid, "price")
		} else {
			record.Price = price
		}
	}
	if _, ok := payload["description"]; ok {
		record.Description, _ = stringField(payload, "description")
	}

	invalid = append(invalid, applyOptionalFields(record, payload)...)
	if len(invalid) > 0 {
		return NewValidationError("invalid field values", invalid...)
	}

	if HasAddressFields(payload) {
		mergePartialAddress(&record.Address, payload)
	}

	if _, ok := payload["promotionType"]; ok {
		tier, _ := stringField(payload, "promotionType")
		outcome := ResolvePromotion(tier)
		if outcome.PromotionType != record.PromotionType {
			record.ApplyPromotion(outcome)
		}
	}

	record.Fingerprint = SubmissionFingerprint(record.OwnerID, record.Title, record.Price, record.PropertyType)
	record.GeoCell = GeoCell(record.Location)
	record.UpdatedAt = now
	record.SyncFlatAddress()
	*target = next
	return nil
}

var partialCountryStrategy = firstOf(nestedField("country"), flatField("country"))

// mergePartialAddress перезаписывает только те части адреса, что пришли в payload.
func mergePartialAddress(addr *Address, payload map[string]any) {
	if v, ok := streetStrategy(payload); ok {
		addr.Street = v
	}
	if v, ok := cityStrategy(payload); ok {
		addr.City = v
	}
	if v, ok := stateStrategy(payload); ok {
		addr.State = v
	}
	if v, ok := partialCountryStrategy(payload); ok {
		addr.Country = v
	}
}

// applyOptionalFields заполняет необязательные поля и возвращает список некорректных.
func applyOptionalFields(record *PropertyRecord, payload map[string]any) []string {
	var invalid []string

	if v, present, ok := numberField(payload, "area"); present {
		if ok {
			record.Area = v
		} else {
			invalid = append(invalid, "area")
		}
	}
	if v, present, ok := countField(payload, "bedrooms"); present {
		if ok {
			record.Bedrooms = v
		} else {
			invalid = append(invalid, "bedrooms")
		}
	}
	if v, present, ok := countField(payload, "bathrooms"); present {
		if ok {
			record.Bathrooms = v
		} else {
			invalid = append(invalid, "bathrooms")
		}
	}
	if raw, ok := payload["features"]; ok {
		record.Features = stringList(raw)
	}
	if raw, ok := payload["images"]; ok {
		record.Images = imageList(raw)
	}
	if raw, ok := payload["location"]; ok {
		point, valid := geoPoint(raw)
		if !valid {
			invalid = append(invalid, "location")
		} else {
			record.Location = point
		}
	}
	return invalid
}

func normalizeOfferingType(raw string) string {
	if raw == OfferingForSale || raw == OfferingForRent {
		return raw
	}
	return ParseOfferingType(raw)
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// numberField читает неотрицательное число; числовые строки допускаются.
// present=false - поля нет, ok=false - поле есть, но значение некорректно.
func numberField(m map[string]any, key string) (value float64, present bool, ok bool) {
	raw, exists := m[key]
	if !exists || raw == nil {
		return 0, false, false
	}
	switch v := raw.(type) {
	case float64:
		value, ok = v, true
	case int:
		value, ok = float64(v), true
	case int64:
		value, ok = float64(v), true
	case json.Number:
		f, err := v.Float64()
		value, ok = f, err == nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, false
		}
		f, err := strconv.ParseFloat(s, 64)
		value, ok = f, err == nil
	}
	// NaN и Inf не сериализуются в JSON, а NaN проходит проверку "< 0"
	if ok && (math.IsNaN(value) || math.IsInf(value, 0) || value < 0) {
		ok = false
	}
	return value, true, ok
}

// MaxRoomCount - верхняя граница для bedrooms/bathrooms.
const MaxRoomCount = 1000

// countField читает целое неотрицательное количество комнат, дробные значения не принимаются.
func countField(m map[string]any, key string) (value int, present bool, ok bool) {
	f, present, ok := numberField(m, key)
	if !present || !ok {
		return 0, present, false
	}
	if f != math.Trunc(f) || f > MaxRoomCount {
		return 0, true, false
	}
	return int(f), true, true
}

func stringList(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := textValue(item); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// imageList принимает как список url-строк, так и список объектов {url, caption}.
func imageList(raw any) []PropertyImage {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]PropertyImage, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, PropertyImage{URL: s})
			}
		case map[string]any:
			url, _ := stringField(v, "url")
			if url == "" {
				continue
			}
			caption, _ := stringField(v, "caption")
			out = append(out, PropertyImage{URL: url, Caption: caption})
		}
	}
	return out
}

func geoPoint(raw any) (*GeoPoint, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, raw == nil
	}
	lat, latPresent, latOK := signedNumber(m, "lat")
	lng, lngPresent, lngOK := signedNumber(m, "lng")
	if !latPresent && !lngPresent {
		return nil, true
	}
	if !latOK || !lngOK || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, false
	}
	return &GeoPoint{Lat: lat, Lng: lng}, true
}

func signedNumber(m map[string]any, key string) (float64, bool, bool) {
	var f float64
	switch v := m[key].(type) {
	case nil:
		return 0, false, false
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, true, false
		}
		f = parsed
	default:
		return 0, true, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, false
	}
	return f, true, true
}

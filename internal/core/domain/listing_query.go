package domain

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Поля сортировки, которые разрешено передавать в sortBy
const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortPrice     = "price"
	SortViews     = "views"
	SortArea      = "area"
)

var sortableFields = []string{SortCreatedAt, SortUpdatedAt, SortPrice, SortViews, SortArea}

// SearchableFields - поля, по которым ищется каждый токен полнотекстового запроса.
var SearchableFields = []string{
	"title", "description",
	"address.street", "address.city", "address.state", "address.country",
	"propertyType", "features",
}

// ListingQuery - независимое от хранилища описание выборки объявлений.
// nil в указателях означает "фильтр не задан".
type ListingQuery struct {
	SearchTokens  []string   `json:"search,omitempty"`
	PropertyType  string     `json:"propertyType,omitempty"`
	RegionalState string     `json:"regionalState,omitempty"`
	City          string     `json:"city,omitempty"`
	OfferingType  string     `json:"offeringType,omitempty"`
	Status        string     `json:"status,omitempty"`
	PromotionType string     `json:"promotionType,omitempty"`
	GeoCellPrefix string     `json:"near,omitempty"`
	OwnerID       *uuid.UUID `json:"owner,omitempty"`

	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	MinBedrooms  *int     `json:"minBedrooms,omitempty"`
	MinBathrooms *int     `json:"minBathrooms,omitempty"`

	SortField string `json:"sortField"`
	SortDesc  bool   `json:"sortDesc"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

// Skip - количество записей, которые нужно пропустить для текущей страницы.
func (q ListingQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// DefaultListingQuery - первая страница, новые сверху.
func DefaultListingQuery() ListingQuery {
	return ListingQuery{
		SortField: SortCreatedAt,
		SortDesc:  true,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

// ParseListingQuery разбирает query-параметры списка объявлений.
// Некорректные числовые значения молча отбрасываются: это read-only поиск.
func ParseListingQuery(values url.Values) ListingQuery {
	q := DefaultListingQuery()

	q.SearchTokens = strings.Fields(values.Get("search"))
	q.PropertyType = parseChoice(values.Get("propertyType"))
	q.RegionalState = parseChoice(firstNonEmpty(values.Get("regionalState"), values.Get("regional_state"), values.Get("state")))
	q.City = parseChoice(values.Get("city"))
	q.Status = parseChoice(values.Get("status"))
	q.PromotionType = parseChoice(values.Get("promotionType"))
	q.GeoCellPrefix = strings.ToLower(strings.TrimSpace(values.Get("near")))

	q.OfferingType = ParseOfferingType(firstNonEmpty(values.Get("for"), values.Get("offeringType")))

	if pr := strings.TrimSpace(values.Get("priceRange")); pr != "" {
		q.MinPrice, q.MaxPrice = ParsePriceRange(pr)
	} else {
		q.MinPrice = parseNonNegativeFloat(values.Get("minPrice"))
		q.MaxPrice = parseNonNegativeFloat(values.Get("maxPrice"))
	}

	q.MinBedrooms = ParseAtLeast(values.Get("bedrooms"))
	q.MinBathrooms = ParseAtLeast(values.Get("bathrooms"))

	q.SortField, q.SortDesc = ParseSort(values.Get("sortBy"))

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	return q
}

// ParsePriceRange понимает "min-max", "min+" и "any".
// Каждая граница разбирается отдельно, некорректная граница отбрасывается.
// Одиночное число читается как "min+": незакодированный "+" в query string
// приходит пробелом, и "1000+" превращается в "1000 ".
func ParsePriceRange(raw string) (min, max *float64) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "any") {
		return nil, nil
	}
	if strings.HasSuffix(raw, "+") {
		return parseNonNegativeFloat(strings.TrimSuffix(raw, "+")), nil
	}
	lower, upper, found := strings.Cut(raw, "-")
	if !found {
		return parseNonNegativeFloat(raw), nil
	}
	return parseNonNegativeFloat(lower), parseNonNegativeFloat(upper)
}

// ParseAtLeast разбирает порог "не меньше N" для спален/санузлов ("3", "3+", "any").
func ParseAtLeast(raw string) *int {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "+")
	if raw == "" || strings.EqualFold(raw, "any") {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// ParseOfferingType переводит алиасы из параметра "for" в тип предложения.
func ParseOfferingType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy", "sell", "sale", "for sale", "for-sale":
		return OfferingForSale
	case "rent", "for rent", "for-rent":
		return OfferingForRent
	default:
		return ""
	}
}

// ParseSort возвращает поле и направление сортировки. Незнакомые значения дают createdAt desc.
func ParseSort(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "", "newest":
		return SortCreatedAt, true
	case "oldest":
		return SortCreatedAt, false
	case "price_asc":
		return SortPrice, false
	case "price_desc":
		return SortPrice, true
	}

	desc := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")
	if !contains(sortableFields, field) {
		return SortCreatedAt, true
	}
	return field, desc
}

func parseChoice(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "any") || strings.EqualFold(raw, "all") {
		return ""
	}
	return raw
}

func parseNonNegativeFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// PageCursor указывает на соседнюю страницу.
type PageCursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageCursor `json:"next,omitempty"`
	Prev *PageCursor `json:"prev,omitempty"`
}

// BuildPagination считает курсоры соседних страниц по общему числу совпадений.
func BuildPagination(total int64, page, limit int) Pagination {
	var p Pagination
	if int64(page)*int64(limit) < total {
		p.Next = &PageCursor{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageCursor{Page: page - 1, Limit: limit}
	}
	return p
}

package memory

import (
	"addisnest-service/internal/core/domain"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// PropertyStore - хранилище объявлений в памяти процесса (PROPERTY_STORE=memory, тесты).
// Семантика фильтров совпадает с postgres и mongo.
type PropertyStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]domain.PropertyRecord
	folder  cases.Caser
}

func NewPropertyStore() *PropertyStore {
	return &PropertyStore{
		records: make(map[uuid.UUID]domain.PropertyRecord),
		folder:  cases.Fold(),
	}
}

func (s *PropertyStore) Create(ctx context.Context, record *domain.PropertyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = cloneRecord(*record)
	return nil
}

func (s *PropertyStore) FindRecentDuplicate(ctx context.Context, probe domain.DuplicateProbe) (*domain.PropertyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.PropertyRecord
	for _, r := range s.records {
		if r.OwnerID != probe.OwnerID || r.CreatedAt.Before(probe.Since) {
			continue
		}
		if strings.TrimSpace(r.Title) != probe.Title || r.Price != probe.Price || r.PropertyType != probe.PropertyType {
			continue
		}
		// самый свежий из подходящих
		if found == nil || r.CreatedAt.After(found.CreatedAt) {
			rec := r
			found = &rec
		}
	}
	if found == nil {
		return nil, nil
	}
	out := cloneRecord(*found)
	return &out, nil
}

func (s *PropertyStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	out := cloneRecord(r)
	return &out, nil
}

func (s *PropertyStore) IncrementViews(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	r.Views++
	s.records[id] = r
	out := cloneRecord(r)
	return &out, nil
}

func (s *PropertyStore) Update(ctx context.Context, record *domain.PropertyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	s.records[record.ID] = cloneRecord(*record)
	return nil
}

func (s *PropertyStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *PropertyStore) List(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error) {
	s.mu.RLock()
	matched := make([]domain.PropertyRecord, 0, len(s.records))
	tokens := make([]string, 0, len(query.SearchTokens))
	for _, t := range query.SearchTokens {
		tokens = append(tokens, s.folder.String(t))
	}
	for _, r := range s.records {
		if s.matches(r, query, tokens) {
			matched = append(matched, cloneRecord(r))
		}
	}
	s.mu.RUnlock()

	sortRecords(matched, query.SortField, query.SortDesc)

	page := &domain.ListingPage{Total: int64(len(matched)), Records: []domain.PropertyRecord{}}
	start := query.Skip()
	if start >= len(matched) {
		return page, nil
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page.Records = matched[start:end]
	for i := range page.Records {
		page.Records[i].SyncFlatAddress()
	}
	return page, nil
}

func (s *PropertyStore) Stats(ctx context.Context) (*domain.PropertyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.PropertyStats{
		ByStatus:    make(map[string]int64),
		ByPromotion: make(map[string]int64),
	}
	for _, r := range s.records {
		stats.Total++
		stats.ByStatus[r.Status]++
		stats.ByPromotion[r.PromotionType]++
		stats.TotalViews += r.Views
		if r.PaymentStatus == domain.PaymentPending {
			stats.PendingPayments++
		}
	}
	return stats, nil
}

func (s *PropertyStore) matches(r domain.PropertyRecord, q domain.ListingQuery, tokens []string) bool {
	if q.OwnerID != nil && r.OwnerID != *q.OwnerID {
		return false
	}
	if q.PropertyType != "" && r.PropertyType != q.PropertyType {
		return false
	}
	if q.OfferingType != "" && r.OfferingType != q.OfferingType {
		return false
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	if q.PromotionType != "" && r.PromotionType != q.PromotionType {
		return false
	}
	if q.RegionalState != "" && s.folder.String(r.Address.State) != s.folder.String(q.RegionalState) {
		return false
	}
	if q.City != "" && s.folder.String(r.Address.City) != s.folder.String(q.City) {
		return false
	}
	if q.GeoCellPrefix != "" && !strings.HasPrefix(r.GeoCell, q.GeoCellPrefix) {
		return false
	}
	if q.MinPrice != nil && r.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && r.Price > *q.MaxPrice {
		return false
	}
	if q.MinBedrooms != nil && r.Bedrooms < *q.MinBedrooms {
		return false
	}
	if q.MinBathrooms != nil && r.Bathrooms < *q.MinBathrooms {
		return false
	}

	if len(tokens) == 0 {
		return true
	}
	haystack := s.searchable(r)
	for _, token := range tokens {
		if !anyContains(haystack, token) {
			return false
		}
	}
	return true
}

// searchable - значения полей SearchableFields после case folding
func (s *PropertyStore) searchable(r domain.PropertyRecord) []string {
	values := []string{
		r.Title, r.Description,
		r.Address.Street, r.Address.City, r.Address.State, r.Address.Country,
		r.PropertyType,
	}
	values = append(values, r.Features...)
	for i, v := range values {
		values[i] = s.folder.String(v)
	}
	return values
}

func anyContains(values []string, token string) bool {
	for _, v := range values {
		if strings.Contains(v, token) {
			return true
		}
	}
	return false
}

func sortRecords(records []domain.PropertyRecord, field string, desc bool) {
	less := func(a, b domain.PropertyRecord) int {
		switch field {
		case domain.SortPrice:
			return compareFloat(a.Price, b.Price)
		case domain.SortArea:
			return compareFloat(a.Area, b.Area)
		case domain.SortViews:
			return compareFloat(float64(a.Views), float64(b.Views))
		case domain.SortUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		c := less(records[i], records[j])
		if c == 0 {
			// стабильный порядок страниц при равных ключах
			return records[i].ID.String() < records[j].ID.String()
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cloneRecord(r domain.PropertyRecord) domain.PropertyRecord {
	r.Features = append([]string(nil), r.Features...)
	r.Images = append([]domain.PropertyImage(nil), r.Images...)
	if r.Location != nil {
		loc := *r.Location
		r.Location = &loc
	}
	return r
}

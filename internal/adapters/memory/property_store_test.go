package memory

import (
	"addisnest-service/internal/core/domain"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, store *PropertyStore, owner uuid.UUID, title string, price float64, city string, age time.Duration) *domain.PropertyRecord {
	t.Helper()
	record, err := domain.NewPropertyFromPayload(owner, map[string]any{
		"title":        title,
		"propertyType": "Apartment",
		"offeringType": "rent",
		"price":        price,
		"bedrooms":     float64(2),
		"city":         city,
		"features":     []any{"Balcony"},
	}, time.Now().Add(-age))
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), record))
	return record
}

func TestPropertyStore_ListSearchAndFilters(t *testing.T) {
	store := NewPropertyStore()
	owner := uuid.New()
	seed(t, store, owner, "Sunny flat in Bole", 15000, "Addis Ababa", 3*time.Hour)
	seed(t, store, owner, "Quiet flat", 9000, "Adama", 2*time.Hour)
	seed(t, store, owner, "Villa with garden", 60000, "ADDIS ABABA", time.Hour)

	q := domain.ParseListingQuery(url.Values{"search": {"FLAT bole"}})
	page, err := store.List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "Sunny flat in Bole", page.Records[0].Title)

	q = domain.ParseListingQuery(url.Values{"search": {"balcony"}, "priceRange": {"10000-70000"}, "city": {"addis ababa"}})
	page, err = store.List(context.Background(), q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, "Villa with garden", page.Records[0].Title, "newest first")
	assert.Equal(t, "Addis Ababa", page.Records[1].City, "flat address is filled on output")

	q = domain.ParseListingQuery(url.Values{"bedrooms": {"3+"}})
	page, err = store.List(context.Background(), q)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Records)
}

func TestPropertyStore_ListPagination(t *testing.T) {
	store := NewPropertyStore()
	owner := uuid.New()
	for i := 0; i < 25; i++ {
		seed(t, store, owner, "Flat", float64(1000+i), "Addis Ababa", time.Duration(i)*time.Minute)
	}

	q := domain.ParseListingQuery(url.Values{"page": {"3"}, "limit": {"10"}, "sortBy": {"price"}})
	page, err := store.List(context.Background(), q)
	require.NoError(t, err)

	assert.EqualValues(t, 25, page.Total)
	require.Len(t, page.Records, 5)
	assert.Equal(t, 1020.0, page.Records[0].Price)

	q.Page = 4
	page, err = store.List(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, page.Records)
}

func TestPropertyStore_FindRecentDuplicate(t *testing.T) {
	store := NewPropertyStore()
	owner := uuid.New()
	existing := seed(t, store, owner, "Flat", 1000, "Adama", 10*time.Second)

	probe := domain.NewDuplicateProbe(existing, time.Now().Add(-30*time.Second))
	found, err := store.FindRecentDuplicate(context.Background(), probe)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, existing.ID, found.ID)

	probe.Since = time.Now().Add(-5 * time.Second)
	found, err = store.FindRecentDuplicate(context.Background(), probe)
	require.NoError(t, err)
	assert.Nil(t, found, "outside the window")

	probe = domain.NewDuplicateProbe(existing, time.Now().Add(-time.Minute))
	probe.OwnerID = uuid.New()
	found, err = store.FindRecentDuplicate(context.Background(), probe)
	require.NoError(t, err)
	assert.Nil(t, found, "other owner")
}

func TestPropertyStore_UpdateDeleteViews(t *testing.T) {
	store := NewPropertyStore()
	record := seed(t, store, uuid.New(), "Flat", 1000, "Adama", 0)
	ctx := context.Background()

	viewed, err := store.IncrementViews(ctx, record.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, viewed.Views)

	missing, err := store.IncrementViews(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	record.Title = "Renamed"
	require.NoError(t, store.Update(ctx, record))
	got, err := store.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	require.NoError(t, store.Delete(ctx, record.ID))
	assert.ErrorIs(t, store.Delete(ctx, record.ID), domain.ErrPropertyNotFound)
	assert.ErrorIs(t, store.Update(ctx, record), domain.ErrPropertyNotFound)
}

func TestPropertyStore_Stats(t *testing.T) {
	store := NewPropertyStore()
	seed(t, store, uuid.New(), "A", 1, "Adama", 0)
	vip, err := domain.NewPropertyFromPayload(uuid.New(), map[string]any{
		"title": "B", "propertyType": "Villa", "offeringType": "sale", "price": float64(5), "promotionType": "VIP",
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), vip))

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.ByStatus[domain.StatusPending])
	assert.EqualValues(t, 1, stats.ByPromotion[domain.PromotionVIP])
	assert.EqualValues(t, 1, stats.PendingPayments)
}

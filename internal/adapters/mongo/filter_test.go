package mongo_adapter

import (
	"addisnest-service/internal/core/domain"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter_Empty(t *testing.T) {
	assert.Empty(t, buildFilter(domain.DefaultListingQuery()))
}

func TestBuildFilter_SearchTokens(t *testing.T) {
	q := domain.ParseListingQuery(url.Values{"search": {"villa a.b"}})

	filter := buildFilter(q)

	and, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 2)

	or := and[1]["$or"].([]bson.M)
	require.Len(t, or, len(domain.SearchableFields))
	assert.Equal(t, bson.M{"title": bson.M{"$regex": `a\.b`, "$options": "i"}}, or[0])
	assert.Contains(t, or, bson.M{"features": bson.M{"$regex": `a\.b`, "$options": "i"}})
}

func TestBuildFilter_Ranges(t *testing.T) {
	q := domain.ParseListingQuery(url.Values{
		"priceRange":    {"1000+"},
		"bedrooms":      {"2"},
		"bathrooms":     {"1+"},
		"for":           {"buy"},
		"regionalState": {"Amhara"},
	})
	owner := uuid.New()
	q.OwnerID = &owner

	filter := buildFilter(q)

	assert.Equal(t, bson.M{"$gte": 1000.0}, filter["price"])
	assert.Equal(t, bson.M{"$gte": 2}, filter["bedrooms"])
	assert.Equal(t, bson.M{"$gte": 1}, filter["bathrooms"])
	assert.Equal(t, domain.OfferingForSale, filter["offeringType"])
	assert.Equal(t, owner.String(), filter["owner"])
	assert.Equal(t, bson.M{"$regex": "^Amhara$", "$options": "i"}, filter["address.state"])
	assert.NotContains(t, filter, "$and")
}

func TestSortDocument(t *testing.T) {
	q := domain.DefaultListingQuery()
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, sortDocument(q))

	q.SortField, q.SortDesc = domain.SortPrice, false
	assert.Equal(t, bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}, sortDocument(q))
}

func TestFindOptions(t *testing.T) {
	q := domain.ParseListingQuery(url.Values{"page": {"3"}, "limit": {"20"}})
	opts := findOptions(q)
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 40, *opts.Skip)
	assert.EqualValues(t, 20, *opts.Limit)
}

func TestDocumentRoundTripKeepsIdentity(t *testing.T) {
	record, err := domain.NewPropertyFromPayload(uuid.New(), map[string]any{
		"title": "Flat", "propertyType": "Apartment", "offeringType": "rent", "price": float64(10),
		"address":  map[string]any{"city": "Hawassa"},
		"location": map[string]any{"lat": 7.05, "lng": 38.47},
	}, time.Now())
	require.NoError(t, err)

	back, err := toDocument(record).toRecord()
	require.NoError(t, err)
	assert.Equal(t, record.ID, back.ID)
	assert.Equal(t, record.OwnerID, back.OwnerID)
	assert.Equal(t, "Hawassa", back.City)
	assert.Equal(t, record.Location, back.Location)
}

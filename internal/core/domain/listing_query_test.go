package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		raw      string
		min, max *float64
	}{
		{"1000-5000", f(1000), f(5000)},
		{"1000+", f(1000), nil},
		{"any", nil, nil},
		{"", nil, nil},
		{"abc-5000", nil, f(5000)},
		{"1000-abc", f(1000), nil},
		{"cheap", nil, nil},
		{"x+", nil, nil},
		{"1000 ", f(1000), nil},
		{"2500000", f(2500000), nil},
		{"NaN", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			min, max := ParsePriceRange(tt.raw)
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.max, max)
		})
	}
}

func TestParseListingQuery_UnencodedPlus(t *testing.T) {
	values, err := url.ParseQuery("priceRange=99999999+")
	require.NoError(t, err)

	q := ParseListingQuery(values)
	require.NotNil(t, q.MinPrice)
	assert.Equal(t, 99999999.0, *q.MinPrice)
	assert.Nil(t, q.MaxPrice)
}

func TestParseListingQuery_Defaults(t *testing.T) {
	q := ParseListingQuery(url.Values{})

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 0, q.Skip())
	assert.Equal(t, SortCreatedAt, q.SortField)
	assert.True(t, q.SortDesc)
	assert.Nil(t, q.MinPrice)
	assert.Nil(t, q.MaxPrice)
	assert.Empty(t, q.SearchTokens)
}

func TestParseListingQuery_Filters(t *testing.T) {
	values := url.Values{
		"search":        {"  blue   house "},
		"propertyType":  {"Villa"},
		"regionalState": {"Oromia"},
		"priceRange":    {"1000-5000"},
		"minPrice":      {"1"},
		"bedrooms":      {"3+"},
		"bathrooms":     {"any"},
		"for":           {"rent"},
		"sortBy":        {"-price"},
		"page":          {"3"},
		"limit":         {"20"},
	}

	q := ParseListingQuery(values)

	assert.Equal(t, []string{"blue", "house"}, q.SearchTokens)
	assert.Equal(t, "Villa", q.PropertyType)
	assert.Equal(t, "Oromia", q.RegionalState)
	require.NotNil(t, q.MinPrice)
	require.NotNil(t, q.MaxPrice)
	assert.Equal(t, 1000.0, *q.MinPrice, "priceRange wins over minPrice")
	assert.Equal(t, 5000.0, *q.MaxPrice)
	require.NotNil(t, q.MinBedrooms)
	assert.Equal(t, 3, *q.MinBedrooms)
	assert.Nil(t, q.MinBathrooms)
	assert.Equal(t, OfferingForRent, q.OfferingType)
	assert.Equal(t, SortPrice, q.SortField)
	assert.True(t, q.SortDesc)
	assert.Equal(t, 40, q.Skip())
}

func TestParseListingQuery_MalformedInputIgnored(t *testing.T) {
	values := url.Values{
		"minPrice":  {"lots"},
		"maxPrice":  {"-5"},
		"bedrooms":  {"three"},
		"bathrooms": {"-1"},
		"page":      {"zero"},
		"limit":     {"1000"},
		"sortBy":    {"password"},
		"for":       {"lease"},
	}

	q := ParseListingQuery(values)

	assert.Nil(t, q.MinPrice)
	assert.Nil(t, q.MaxPrice)
	assert.Nil(t, q.MinBedrooms)
	assert.Nil(t, q.MinBathrooms)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, SortCreatedAt, q.SortField)
	assert.Equal(t, "", q.OfferingType)
}

func TestParseOfferingType(t *testing.T) {
	for _, alias := range []string{"buy", "sell", "sale", "Sale", "For Sale"} {
		assert.Equal(t, OfferingForSale, ParseOfferingType(alias), alias)
	}
	assert.Equal(t, OfferingForRent, ParseOfferingType("RENT"))
	assert.Equal(t, "", ParseOfferingType("swap"))
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		raw   string
		field string
		desc  bool
	}{
		{"", SortCreatedAt, true},
		{"newest", SortCreatedAt, true},
		{"oldest", SortCreatedAt, false},
		{"price", SortPrice, false},
		{"-views", SortViews, true},
		{"price_desc", SortPrice, true},
		{"-owner", SortCreatedAt, true},
	}
	for _, tt := range tests {
		field, desc := ParseSort(tt.raw)
		assert.Equal(t, tt.field, field, tt.raw)
		assert.Equal(t, tt.desc, desc, tt.raw)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(25, 1, 10)
	require.NotNil(t, p.Next)
	assert.Equal(t, PageCursor{Page: 2, Limit: 10}, *p.Next)
	assert.Nil(t, p.Prev)

	p = BuildPagination(25, 3, 10)
	assert.Nil(t, p.Next)
	require.NotNil(t, p.Prev)
	assert.Equal(t, PageCursor{Page: 2, Limit: 10}, *p.Prev)

	p = BuildPagination(20, 2, 10)
	assert.Nil(t, p.Next, "exact boundary has no next page")
	assert.NotNil(t, p.Prev)

	p = BuildPagination(0, 1, 10)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Prev)
}

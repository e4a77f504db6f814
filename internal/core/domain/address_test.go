package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress_FlatOnly(t *testing.T) {
	raw := map[string]any{
		"title":   "Flat",
		"street":  "Bole Road",
		"city":    "Addis Ababa",
		"state":   "Addis Ababa",
		"country": "Ethiopia",
	}

	out := NormalizeAddress(raw)

	nested, ok := out["address"].(map[string]any)
	require.True(t, ok)
	for _, k := range []string{"street", "city", "state", "country"} {
		assert.Equal(t, raw[k], nested[k], k)
		assert.Equal(t, raw[k], out[k], k)
	}
	_, mutated := raw["address"]
	assert.False(t, mutated, "input payload must not be modified")
}

func TestNormalizeAddress_NestedOnly(t *testing.T) {
	raw := map[string]any{
		"address": map[string]any{
			"street":        "Churchill Ave",
			"city":          "Addis Ababa",
			"regionalState": "Addis Ababa",
			"country":       "Ethiopia",
		},
	}

	out := NormalizeAddress(raw)

	assert.Equal(t, "Churchill Ave", out["street"])
	assert.Equal(t, "Addis Ababa", out["city"])
	assert.Equal(t, "Addis Ababa", out["state"])
	assert.Equal(t, "Ethiopia", out["country"])
	nested := out["address"].(map[string]any)
	assert.Equal(t, "Addis Ababa", nested["state"])
	assert.NotContains(t, nested, "regionalState")
}

func TestNormalizeAddress_NestedWinsOverFlat(t *testing.T) {
	raw := map[string]any{
		"city":    "Flat City",
		"address": map[string]any{"city": "Nested City", "street": ""},
		"street":  "Flat Street",
	}

	addr := ResolveAddress(raw)

	assert.Equal(t, "Nested City", addr.City)
	assert.Equal(t, "Flat Street", addr.Street, "empty nested value falls back to flat")
}

func TestResolveAddress_Defaults(t *testing.T) {
	addr := ResolveAddress(map[string]any{})
	assert.Equal(t, Address{Country: DefaultCountry}, addr)

	addr = ResolveAddress(map[string]any{"regional_state": "Oromia"})
	assert.Equal(t, "Oromia", addr.State)
}

func TestResolveAddress_StreetRecovery(t *testing.T) {
	tests := []struct {
		name   string
		street any
		want   string
	}{
		{"object with name", map[string]any{"name": "Africa Ave"}, "Africa Ave"},
		{"object with value", map[string]any{"value": "Ring Road"}, "Ring Road"},
		{"object with text", map[string]any{"text": "Piassa"}, "Piassa"},
		{"unrecoverable object", map[string]any{"foo": "bar"}, ""},
		{"stringified object", "[object Object]", ""},
		{"number", float64(22), "22"},
		{"list", []any{"a"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"address": map[string]any{"street": tt.street}}
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, ResolveAddress(raw).Street)
			})
		})
	}
}

func TestAddressStrategies_Independent(t *testing.T) {
	raw := map[string]any{
		"state":   "Amhara",
		"address": map[string]any{"regional_state": "Tigray"},
	}

	v, ok := nestedField("state", "regionalState", "regional_state")(raw)
	require.True(t, ok)
	assert.Equal(t, "Tigray", v)

	v, ok = flatField("state")(raw)
	require.True(t, ok)
	assert.Equal(t, "Amhara", v)

	_, ok = nestedField("city")(raw)
	assert.False(t, ok)

	_, ok = nestedField("city")(map[string]any{"address": "not an object"})
	assert.False(t, ok)
}

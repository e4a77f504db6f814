package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	tests := map[string]string{
		"events/property-created/v1.json":  "PropertyCreatedEvent/1.0.0",
		"requests/property-create/v1.json": "PropertyCreateRequest/1.0.0",
		"requests/property-update/v2.json": "PropertyUpdateRequest/2.0.0",
		"events/property-created.json":     "",
		"other/property-created/v1.json":   "",
		"events/property-created/1.json":   "",
	}
	for path, want := range tests {
		assert.Equal(t, want, generateKeyFromPath(path), path)
	}
}

func TestSchemasCompiled(t *testing.T) {
	for _, key := range []string{PropertyCreateRequest, PropertyUpdateRequest, "PropertyCreatedEvent/1.0.0"} {
		assert.Contains(t, compiledSchemas, key)
	}
}

func TestValidateEvent(t *testing.T) {
	valid := []byte(`{
		"property_id": "2f1b7c1e-4a51-4a39-9d1b-0d4a8f3c9e10",
		"owner_id": "6c0b5d0e-8b9a-4f1c-a7a5-0c7e2b1d9f22",
		"title": "Villa in Bole",
		"price": 12000000,
		"promotion_type": "VIP",
		"status": "pending",
		"payment_status": "pending",
		"created_at": "2025-03-01T10:00:00Z"
	}`)
	require.NoError(t, ValidateEvent("PropertyCreatedEvent", "1.0.0", valid))

	assert.Error(t, ValidateEvent("PropertyCreatedEvent", "1.0.0", []byte(`{"title": "x"}`)))
	assert.Error(t, ValidateEvent("PropertyCreatedEvent", "1.0.0", []byte(`not json`)))
	assert.Error(t, ValidateEvent("PropertyCreatedEvent", "9.0.0", valid))
}

func TestValidatePayload(t *testing.T) {
	ok := map[string]interface{}{
		"title":  "House",
		"price":  "250000",
		"images": []interface{}{"https://cdn/1.jpg", map[string]interface{}{"url": "https://cdn/2.jpg"}},
	}
	require.NoError(t, ValidatePayload(PropertyCreateRequest, ok))

	bad := map[string]interface{}{
		"title":    float64(42),
		"features": float64(3),
	}
	err := ValidatePayload(PropertyCreateRequest, bad)
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"title", "features"}, InvalidFields(err))

	assert.Error(t, ValidatePayload(PropertyUpdateRequest, []interface{}{"not an object"}))
}

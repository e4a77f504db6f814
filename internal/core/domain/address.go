package domain

import (
	"fmt"
	"strings"
)

// DefaultCountry подставляется, когда страна не пришла ни в одной из форм.
const DefaultCountry = "Ethiopia"

// Address - каноническая вложенная форма адреса.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// addressStrategy пытается достать одно значение из сырого payload.
type addressStrategy func(raw map[string]any) (string, bool)

// alternateTextKeys - ключи, под которыми лежит строка, если поле пришло объектом.
var alternateTextKeys = []string{"name", "value", "text"}

// nestedField ищет значение во вложенном объекте address по одному из ключей.
func nestedField(keys ...string) addressStrategy {
	return func(raw map[string]any) (string, bool) {
		nested, ok := raw["address"].(map[string]any)
		if !ok {
			return "", false
		}
		return lookupText(nested, keys)
	}
}

// flatField ищет значение на верхнем уровне payload.
func flatField(keys ...string) addressStrategy {
	return func(raw map[string]any) (string, bool) {
		return lookupText(raw, keys)
	}
}

func fallback(value string) addressStrategy {
	return func(map[string]any) (string, bool) {
		return value, true
	}
}

// firstOf - первая успешная стратегия побеждает.
func firstOf(strategies ...addressStrategy) addressStrategy {
	return func(raw map[string]any) (string, bool) {
		for _, s := range strategies {
			if v, ok := s(raw); ok {
				return v, true
			}
		}
		return "", false
	}
}

func lookupText(m map[string]any, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := textValue(m[k]); ok {
			return v, true
		}
	}
	return "", false
}

// textValue приводит значение поля к непустой строке.
// Объект разбирается по alternateTextKeys, "[object Object]" считается пустым.
func textValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(val)
		if s == "" || s == "[object Object]" {
			return "", false
		}
		return s, true
	case map[string]any:
		for _, k := range alternateTextKeys {
			if s, ok := textValue(val[k]); ok {
				return s, true
			}
		}
		return "", false
	case float64, int, int64:
		return fmt.Sprint(val), true
	default:
		return "", false
	}
}

var (
	streetStrategy  = firstOf(nestedField("street"), flatField("street"))
	cityStrategy    = firstOf(nestedField("city"), flatField("city"))
	stateStrategy   = firstOf(nestedField("state", "regionalState", "regional_state"), flatField("state", "regional_state", "regionalState"))
	countryStrategy = firstOf(nestedField("country"), flatField("country"), fallback(DefaultCountry))
)

// ResolveAddress собирает канонический адрес из любой комбинации плоской и вложенной форм.
func ResolveAddress(raw map[string]any) Address {
	street, _ := streetStrategy(raw)
	city, _ := cityStrategy(raw)
	state, _ := stateStrategy(raw)
	country, _ := countryStrategy(raw)
	return Address{Street: street, City: city, State: state, Country: country}
}

// NormalizeAddress возвращает копию payload, в которой есть и вложенный address,
// и плоские street/city/state/country с одинаковыми значениями. Исходный payload не меняется.
func NormalizeAddress(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw)+5)
	for k, v := range raw {
		out[k] = v
	}

	addr := ResolveAddress(raw)
	out["address"] = map[string]any{
		"street":  addr.Street,
		"city":    addr.City,
		"state":   addr.State,
		"country": addr.Country,
	}
	out["street"] = addr.Street
	out["city"] = addr.City
	out["state"] = addr.State
	out["country"] = addr.Country
	delete(out, "regional_state")
	return out
}

// HasAddressFields - есть ли в payload хоть одно поле адреса.
func HasAddressFields(raw map[string]any) bool {
	for _, k := range []string{"address", "street", "city", "state", "regional_state", "country"} {
		if _, ok := raw[k]; ok {
			return true
		}
	}
	return false
}

package catalog

import (
	"encoding/json"
	"math"
	"net/url"
	"strings"
)

const (
	minInventory = 1
	maxInventory = 9999

	typeParam = "type"
)

const (
	msgMissingFields    = "Request body is missing required fields"
	msgInvalidName      = "Name must be a non-empty string"
	msgInvalidInventory = "Inventory must be a number between 1 and 9999"
	msgInvalidCost      = "Cost must be a positive number"
	msgInvalidJSON      = "Request body must be valid JSON"
)

func msgInvalidType() string {
	return "Type must be one of " + allowedCategories()
}

// CreateRequest is the untrusted body of a product creation request.
// Fields stay untyped so that wrong JSON types can be told apart from
// missing ones.
type CreateRequest struct {
	Name      any `json:"name"`
	Type      any `json:"type"`
	Inventory any `json:"inventory"`
	Cost      any `json:"cost"`
}

func IsValidName(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// IsValidCategory is strict: unlike ResolveCategory it rejects anything
// that is not already a canonical lowercase name.
func IsValidCategory(v any) bool {
	s, ok := v.(string)
	return ok && Category(s).Valid()
}

func IsValidInventory(v any) bool {
	n, ok := asNumber(v)
	return ok && n == math.Trunc(n) && n >= minInventory && n <= maxInventory
}

func IsValidCost(v any) bool {
	n, ok := asNumber(v)
	return ok && !math.IsInf(n, 0) && n >= 0
}

// asNumber accepts the numeric shapes produced by encoding/json as well as
// native Go numbers. NaN is never a number here.
func asNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	return n, !math.IsNaN(n)
}

// ValidateCreate checks req field by field and stops at the first failure.
func ValidateCreate(req CreateRequest) error {
	if req.Name == nil || req.Type == nil || req.Inventory == nil || req.Cost == nil {
		return &ValidationError{Message: msgMissingFields}
	}
	if !IsValidName(req.Name) {
		return &ValidationError{Message: msgInvalidName}
	}
	if !IsValidCategory(req.Type) {
		return &ValidationError{Message: msgInvalidType()}
	}
	if !IsValidInventory(req.Inventory) {
		return &ValidationError{Message: msgInvalidInventory}
	}
	if !IsValidCost(req.Cost) {
		return &ValidationError{Message: msgInvalidCost}
	}
	return nil
}

// ValidateTypeFilter checks the optional type query parameter. An absent or
// empty filter passes; a repeated one is rejected.
func ValidateTypeFilter(q url.Values) error {
	vals := q[typeParam]
	switch {
	case len(vals) == 0:
		return nil
	case len(vals) > 1:
		return &ValidationError{Message: msgInvalidType()}
	case vals[0] == "":
		return nil
	}
	if !IsValidCategory(vals[0]) {
		return &ValidationError{Message: msgInvalidType()}
	}
	return nil
}

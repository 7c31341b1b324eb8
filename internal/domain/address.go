package domain

import (
	"fmt"
	"strings"
)

// StructuredAddress is the full address shape every booking must carry.
// Partial addresses (postcode-only shortcuts) are rejected at the boundary
// rather than silently defaulted.
type StructuredAddress struct {
	Street      string
	HouseNumber string
	City        string
	Postcode    string
	County      string // optional
	Coordinates Coordinates
}

// ValidationError reports a malformed address, naming the address role
// (e.g. "pickup", "drop[1]") and every missing field.
type ValidationError struct {
	Role   string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s address missing required fields: %s", e.Role, strings.Join(e.Fields, ", "))
}

// Validate checks that all mandatory textual fields and coordinates are present.
func (a StructuredAddress) Validate(role string) error {
	var missing []string

	if strings.TrimSpace(a.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(a.HouseNumber) == "" {
		missing = append(missing, "house_number")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.Postcode) == "" {
		missing = append(missing, "postcode")
	}
	if a.Coordinates.IsZero() || !a.Coordinates.Valid() {
		missing = append(missing, "coordinates")
	}

	if len(missing) > 0 {
		return &ValidationError{Role: role, Fields: missing}
	}
	return nil
}

package domain

import (
	"errors"
	"strings"
	"testing"
)

func validAddress() StructuredAddress {
	return StructuredAddress{
		Street:      "Baker Street",
		HouseNumber: "221B",
		City:        "London",
		Postcode:    "NW1 6XE",
		Coordinates: Coordinates{Lat: 51.5237, Lng: -0.1585},
	}
}

func TestValidateAcceptsFullAddress(t *testing.T) {
	if err := validAddress().Validate("pickup"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateNamesRoleAndMissingFields(t *testing.T) {
	a := validAddress()
	a.Street = ""
	a.Postcode = "  "

	err := a.Validate("pickup")
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Role != "pickup" {
		t.Errorf("role = %q, want pickup", verr.Role)
	}

	msg := err.Error()
	if !strings.Contains(msg, "pickup") {
		t.Errorf("error %q does not mention pickup", msg)
	}
	if !strings.Contains(msg, "street") || !strings.Contains(msg, "postcode") {
		t.Errorf("error %q does not name the missing fields", msg)
	}
}

func TestValidateRejectsMissingCoordinates(t *testing.T) {
	a := validAddress()
	a.Coordinates = Coordinates{}

	err := a.Validate("drop[0]")
	if err == nil || !strings.Contains(err.Error(), "coordinates") {
		t.Fatalf("expected coordinates error, got %v", err)
	}

	a.Coordinates = Coordinates{Lat: 120, Lng: 10}
	if err := a.Validate("drop[0]"); err == nil {
		t.Fatal("expected error for out-of-range latitude")
	}
}

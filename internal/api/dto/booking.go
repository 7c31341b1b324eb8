package dto

import (
	"time"

	"multidrop-routing-service/internal/domain"
)

type Address struct {
	Street      string  `json:"street"`
	HouseNumber string  `json:"house_number"`
	City        string  `json:"city"`
	Postcode    string  `json:"postcode"`
	County      string  `json:"county,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

func (a Address) ToDomain() domain.StructuredAddress {
	return domain.StructuredAddress{
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		City:        a.City,
		Postcode:    a.Postcode,
		County:      a.County,
		Coordinates: domain.Coordinates{Lat: a.Lat, Lng: a.Lng},
	}
}

type Dimensions struct {
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

type Item struct {
	Category           string      `json:"category"`
	Name               string      `json:"name"`
	Quantity           int         `json:"quantity"`
	WeightKg           float64     `json:"weight_kg,omitempty"`
	VolumeM3           float64     `json:"volume_m3,omitempty"`
	Dimensions         *Dimensions `json:"dimensions,omitempty"`
	RequiresTwoWorkers bool        `json:"requires_two_workers,omitempty"`
	Fragile            bool        `json:"fragile,omitempty"`
	Valuable           bool        `json:"valuable,omitempty"`
	DismantleMinutes   float64     `json:"dismantle_minutes,omitempty"`
	ReassembleMinutes  float64     `json:"reassemble_minutes,omitempty"`
}

type Load struct {
	Items      []Item `json:"items"`
	FloorLevel int    `json:"floor_level,omitempty"`
	HasLift    bool   `json:"has_lift,omitempty"`
}

func (l Load) ToDomain() domain.LoadSpec {
	spec := domain.LoadSpec{
		Items:      make([]domain.Item, 0, len(l.Items)),
		FloorLevel: l.FloorLevel,
		HasLift:    l.HasLift,
	}
	for _, it := range l.Items {
		item := domain.Item{
			Category:           it.Category,
			Name:               it.Name,
			Quantity:           it.Quantity,
			WeightKg:           it.WeightKg,
			VolumeM3:           it.VolumeM3,
			RequiresTwoWorkers: it.RequiresTwoWorkers,
			Fragile:            it.Fragile,
			Valuable:           it.Valuable,
			DismantleMinutes:   it.DismantleMinutes,
			ReassembleMinutes:  it.ReassembleMinutes,
		}
		if it.Dimensions != nil {
			item.Dimensions = &domain.Dimensions{
				LengthCm: it.Dimensions.LengthCm,
				WidthCm:  it.Dimensions.WidthCm,
				HeightCm: it.Dimensions.HeightCm,
			}
		}
		spec.Items = append(spec.Items, item)
	}
	return spec
}

// BookingLite mirrors the optimizer's slim booking shape on the wire.
type BookingLite struct {
	BookingID    string    `json:"booking_id"`
	PickupLat    float64   `json:"pickup_lat"`
	PickupLng    float64   `json:"pickup_lng"`
	DropoffLat   float64   `json:"dropoff_lat"`
	DropoffLng   float64   `json:"dropoff_lng"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	LoadFraction float64   `json:"load_fraction"`
	Priority     int       `json:"priority,omitempty"`
	ValueGBP     float64   `json:"value_gbp,omitempty"`
}

func (b BookingLite) ToDomain() domain.BookingLite {
	return domain.BookingLite{
		BookingID:    b.BookingID,
		Pickup:       domain.Coordinates{Lat: b.PickupLat, Lng: b.PickupLng},
		Dropoff:      domain.Coordinates{Lat: b.DropoffLat, Lng: b.DropoffLng},
		ScheduledAt:  b.ScheduledAt,
		LoadFraction: b.LoadFraction,
		Priority:     b.Priority,
		ValueGBP:     b.ValueGBP,
	}
}

package domain

import (
	"testing"
	"time"
)

func validListing() *Listing {
	now := time.Now().UTC()
	return &Listing{
		ID:           "l1",
		Name:         "Veg Biryani",
		Ingredients:  "rice, vegetables, spices",
		DietaryType:  DietVegetarian,
		Quantity:     5,
		Status:       StatusAvailable,
		RestaurantID: "r1",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestListingValidate(t *testing.T) {
	if err := validListing().Validate(); err != nil {
		t.Fatalf("valid listing rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Listing)
	}{
		{"empty name", func(l *Listing) { l.Name = "" }},
		{"empty ingredients", func(l *Listing) { l.Ingredients = "" }},
		{"zero quantity", func(l *Listing) { l.Quantity = 0 }},
		{"negative quantity", func(l *Listing) { l.Quantity = -3 }},
		{"unknown dietary type", func(l *Listing) { l.DietaryType = "Pescatarian" }},
		{"missing restaurant", func(l *Listing) { l.RestaurantID = "" }},
		{"booked without ngo", func(l *Listing) { l.Status = StatusBooked }},
		{"available with ngo", func(l *Listing) { l.NgoID = "n1" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := validListing()
			tc.mutate(l)
			if err := l.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	if !StatusAvailable.CanTransitionTo(StatusBooked) {
		t.Fatalf("available -> booked must be allowed")
	}
	if !StatusBooked.CanTransitionTo(StatusAvailable) {
		t.Fatalf("booked -> available must be allowed")
	}
	if StatusAvailable.CanTransitionTo(StatusAvailable) {
		t.Fatalf("available -> available must not be allowed")
	}
	if StatusBooked.CanTransitionTo(StatusBooked) {
		t.Fatalf("booked -> booked must not be allowed")
	}
}

func TestIsCancellableBoundary(t *testing.T) {
	bookedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"immediately", bookedAt, true},
		{"at 59s", bookedAt.Add(59 * time.Second), true},
		{"exactly at 60s", bookedAt.Add(60 * time.Second), true},
		{"at 61s", bookedAt.Add(61 * time.Second), false},
		{"much later", bookedAt.Add(time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCancellable(bookedAt, tc.now); got != tc.want {
				t.Fatalf("IsCancellable(%v) = %v, want %v", tc.now.Sub(bookedAt), got, tc.want)
			}
		})
	}
}

func TestPickupDeadline(t *testing.T) {
	bookedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	want := bookedAt.Add(time.Hour)
	if got := PickupDeadline(bookedAt); !got.Equal(want) {
		t.Fatalf("PickupDeadline = %v, want %v", got, want)
	}
}

func TestValidDietaryType(t *testing.T) {
	for _, dt := range []DietaryType{DietVegetarian, DietNonVegetarian, DietVegan} {
		if !ValidDietaryType(dt) {
			t.Fatalf("%s must be valid", dt)
		}
	}
	if ValidDietaryType("Keto") {
		t.Fatalf("unknown type accepted")
	}
}

package domain

import (
	"errors"
	"time"
)

// ListingStatus represents the lifecycle state of a food listing.
type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusBooked    ListingStatus = "booked"
)

// DietaryType classifies the food offered in a listing.
type DietaryType string

const (
	DietVegetarian    DietaryType = "Vegetarian"
	DietNonVegetarian DietaryType = "Non-Vegetarian"
	DietVegan         DietaryType = "Vegan"
)

const (
	// CancellationWindow is how long after booking an NGO may still cancel.
	CancellationWindow = 60 * time.Second

	// PickupWindow is the time an NGO has to collect a booked listing. The
	// deadline is informational only; no state transition is driven by it.
	PickupWindow = time.Hour

	// ListingRetention is how long an unbooked listing stays in the store
	// before the sweeper reclaims it.
	ListingRetention = 12 * time.Hour
)

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrAlreadyBooked      = errors.New("listing already booked")
	ErrNotBooked          = errors.New("listing is not booked")
	ErrForbidden          = errors.New("access forbidden")
	ErrWindowClosed       = errors.New("cancellation window closed")
	ErrInvalidListing     = errors.New("invalid listing")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetCode   = errors.New("invalid reset code")
)

// validTransitions defines the allowed state machine transitions.
// A booking claims an available listing; a timely cancellation releases it.
var validTransitions = map[ListingStatus][]ListingStatus{
	StatusAvailable: {StatusBooked},
	StatusBooked:    {StatusAvailable},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidDietaryType reports whether t is one of the accepted dietary types.
func ValidDietaryType(t DietaryType) bool {
	switch t {
	case DietVegetarian, DietNonVegetarian, DietVegan:
		return true
	}
	return false
}

// Listing is the core aggregate: a unit of surplus food offered by a
// restaurant, claimable by exactly one NGO at a time.
type Listing struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name"`
	Ingredients  string        `json:"ingredients" bson:"ingredients"`
	DietaryType  DietaryType   `json:"dietary_type" bson:"dietary_type"`
	Quantity     int           `json:"quantity" bson:"quantity"`
	Status       ListingStatus `json:"status" bson:"status"`
	RestaurantID string        `json:"restaurant_id" bson:"restaurant_id"`
	NgoID        string        `json:"ngo_id,omitempty" bson:"ngo_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// Validate checks the structural invariants of a listing: quantity is at
// least one, the dietary type is known, and the NGO reference is set exactly
// when the listing is booked.
func (l *Listing) Validate() error {
	if l.Name == "" || l.Ingredients == "" {
		return ErrInvalidListing
	}
	if l.Quantity < 1 {
		return ErrInvalidListing
	}
	if !ValidDietaryType(l.DietaryType) {
		return ErrInvalidListing
	}
	if l.RestaurantID == "" {
		return ErrInvalidListing
	}
	if (l.Status == StatusBooked) != (l.NgoID != "") {
		return ErrInvalidListing
	}
	return nil
}

// IsCancellable reports whether a booking made at bookedAt may still be
// cancelled at now. The boundary is inclusive: a cancel exactly at the window
// edge succeeds.
func IsCancellable(bookedAt, now time.Time) bool {
	return now.Sub(bookedAt) <= CancellationWindow
}

// PickupDeadline returns the time by which a booking made at bookedAt should
// be collected. Display only.
func PickupDeadline(bookedAt time.Time) time.Time {
	return bookedAt.Add(PickupWindow)
}

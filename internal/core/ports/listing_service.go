package ports

import (
	"context"
	"time"
)

// CreateListingInput carries all data needed to publish a new food listing.
// RestaurantID and Role come from the caller's verified credentials.
type CreateListingInput struct {
	Name         string
	Ingredients  string
	DietaryType  string
	Quantity     int
	RestaurantID string
	Role         string
}

// ListingView is a listing with owner and booking identities resolved to
// display names, as returned to clients.
type ListingView struct {
	ID             string
	Name           string
	Ingredients    string
	DietaryType    string
	Quantity       int
	Status         string
	RestaurantID   string
	RestaurantName string
	NgoID          string
	NgoName        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	// PickupDeadline is set only for booked listings; informational.
	PickupDeadline time.Time
}

// DeleteListingInput identifies the listing and the caller requesting removal.
type DeleteListingInput struct {
	ListingID string
	CallerID  string
	Role      string
}

// ListingService defines the listing use cases: publishing, browsing,
// and withdrawing donations.
type ListingService interface {
	Create(ctx context.Context, input CreateListingInput) (*ListingView, error)
	// ListAvailable returns every available listing with the owning
	// restaurant's display name resolved, newest first.
	ListAvailable(ctx context.Context) ([]ListingView, error)
	// ListByRestaurant returns all listings owned by the restaurant, any status.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]ListingView, error)
	// History returns the restaurant's booked listings with NGO details resolved.
	History(ctx context.Context, restaurantID string) ([]ListingView, error)
	// Orders returns the listings currently booked by the NGO.
	Orders(ctx context.Context, ngoID string) ([]ListingView, error)
	Delete(ctx context.Context, input DeleteListingInput) error
}

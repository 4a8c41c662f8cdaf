package ports

import (
	"context"
	"time"

	"github.com/foodbridge/donation-platform/internal/core/domain"
)

// ListingRepository defines persistence operations for food listings.
//
// Book and Release are the conditional-update primitives the booking state
// machine is built on: each must be applied as a single atomic write whose
// filter includes the expected current state, so that concurrent attempts on
// the same listing resolve to exactly one winner inside the store.
type ListingRepository interface {
	Insert(ctx context.Context, l *domain.Listing) error
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	FindAvailable(ctx context.Context) ([]*domain.Listing, error)
	FindByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Listing, error)
	FindBookedByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Listing, error)
	FindBookedByNgo(ctx context.Context, ngoID string) ([]*domain.Listing, error)

	// Book transitions the listing to booked and attaches ngoID, only if the
	// listing is still available at the moment the update is applied. Returns
	// the updated listing, domain.ErrAlreadyBooked when the listing exists but
	// was claimed first, or domain.ErrListingNotFound.
	Book(ctx context.Context, listingID, ngoID string, now time.Time) (*domain.Listing, error)

	// Release reverts a booking held by ngoID back to available, conditional
	// on the booking still being in the state observed at bookedAt. Returns
	// domain.ErrNotBooked when the conditional update matched nothing but the
	// listing exists, or domain.ErrListingNotFound.
	Release(ctx context.Context, listingID, ngoID string, bookedAt, now time.Time) (*domain.Listing, error)

	Delete(ctx context.Context, id string) error

	// DeleteStaleAvailable removes every available listing created before
	// cutoff and reports how many were deleted.
	DeleteStaleAvailable(ctx context.Context, cutoff time.Time) (int64, error)
}

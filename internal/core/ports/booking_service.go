package ports

import "context"

// BookInput carries the parameters of a booking attempt.
type BookInput struct {
	ListingID string
	NgoID     string
	Role      string
}

// CancelInput carries the parameters of a cancellation attempt. NgoID is the
// caller's own identity; only the NGO holding the booking may cancel it.
type CancelInput struct {
	ListingID string
	NgoID     string
	Role      string
}

// BookingService is the authoritative state machine for the
// available ↔ booked transitions.
type BookingService interface {
	// Book atomically claims an available listing for the NGO. Exactly one of
	// any set of concurrent calls for the same listing succeeds; the rest
	// receive domain.ErrAlreadyBooked.
	Book(ctx context.Context, input BookInput) (*ListingView, error)
	// Cancel releases a booking, allowed only within the cancellation window
	// and only by the NGO that holds it.
	Cancel(ctx context.Context, input CancelInput) (*ListingView, error)
}

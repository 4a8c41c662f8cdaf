package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodbridge/donation-platform/internal/api/metrics"
	"github.com/foodbridge/donation-platform/internal/core/domain"
	"github.com/foodbridge/donation-platform/internal/core/ports"
)

// BookingService is the authoritative state machine for the
// available ↔ booked transitions. All mutation goes through the repository's
// conditional-update primitives, so two NGOs racing for the same listing are
// resolved inside the store: exactly one wins, the other observes
// ErrAlreadyBooked.
type BookingService struct {
	listings ports.ListingRepository
	users    ports.UserRepository
	notifier ports.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewBookingService(listings ports.ListingRepository, users ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *BookingService {
	return &BookingService{
		listings: listings,
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// Book claims an available listing for the NGO. The transition is a single
// conditional update ("set booked if still available") applied by the store;
// a lost race surfaces as domain.ErrAlreadyBooked, distinct from
// domain.ErrListingNotFound.
//
// On success the notification side-channel is triggered fire-and-forget; its
// failure never affects the booking result.
func (s *BookingService) Book(ctx context.Context, input ports.BookInput) (*ports.ListingView, error) {
	if input.Role != domain.RoleNGO {
		return nil, fmt.Errorf("book: %w", domain.ErrForbidden)
	}

	ngo, err := s.users.FindByID(ctx, input.NgoID)
	if err != nil {
		metrics.BookingsTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("book: %w", err)
	}
	if ngo.Role != domain.RoleNGO {
		metrics.BookingsTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("book: %w", domain.ErrUserNotFound)
	}

	listing, err := s.listings.Book(ctx, input.ListingID, input.NgoID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyBooked):
			metrics.BookingsTotal.WithLabelValues("conflict").Inc()
			s.logger.Info().
				Str("listing_id", input.ListingID).
				Str("ngo_id", input.NgoID).
				Msg("booking lost race")
		case errors.Is(err, domain.ErrListingNotFound):
			metrics.BookingsTotal.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}

	metrics.BookingsTotal.WithLabelValues("booked").Inc()
	s.logger.Info().
		Str("listing_id", listing.ID).
		Str("ngo_id", input.NgoID).
		Str("restaurant_id", listing.RestaurantID).
		Msg("listing booked")

	s.notifier.Enqueue(ports.Notification{
		Kind:           "booked",
		ListingID:      listing.ID,
		ListingName:    listing.Name,
		RestaurantID:   listing.RestaurantID,
		NgoID:          listing.NgoID,
		PickupDeadline: domain.PickupDeadline(listing.UpdatedAt),
	})

	view := s.view(listing, ngo.Name)
	return &view, nil
}

// Cancel reverts a booking back to available. The authoritative window check
// lives here: the cancel must arrive within domain.CancellationWindow of the
// booking, and only the NGO that holds the booking may issue it. The release
// itself is conditional on the booking state observed here, so a cancel
// racing a concurrent transition never corrupts state.
func (s *BookingService) Cancel(ctx context.Context, input ports.CancelInput) (*ports.ListingView, error) {
	if input.Role != domain.RoleNGO {
		return nil, fmt.Errorf("cancel: %w", domain.ErrForbidden)
	}

	listing, err := s.listings.FindByID(ctx, input.ListingID)
	if err != nil {
		metrics.CancellationsTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("cancel: %w", err)
	}
	if listing.Status != domain.StatusBooked {
		metrics.CancellationsTotal.WithLabelValues("conflict").Inc()
		return nil, fmt.Errorf("cancel: %w", domain.ErrNotBooked)
	}
	if listing.NgoID != input.NgoID {
		metrics.CancellationsTotal.WithLabelValues("forbidden").Inc()
		return nil, fmt.Errorf("cancel: %w", domain.ErrForbidden)
	}

	bookedAt := listing.UpdatedAt
	if !domain.IsCancellable(bookedAt, s.now()) {
		metrics.CancellationsTotal.WithLabelValues("window_closed").Inc()
		return nil, fmt.Errorf("cancel: %w", domain.ErrWindowClosed)
	}

	released, err := s.listings.Release(ctx, input.ListingID, input.NgoID, bookedAt, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotBooked) {
			metrics.CancellationsTotal.WithLabelValues("conflict").Inc()
		}
		return nil, err
	}

	metrics.CancellationsTotal.WithLabelValues("cancelled").Inc()
	s.logger.Info().
		Str("listing_id", released.ID).
		Str("ngo_id", input.NgoID).
		Msg("booking cancelled, listing available again")

	s.notifier.Enqueue(ports.Notification{
		Kind:         "cancelled",
		ListingID:    released.ID,
		ListingName:  released.Name,
		RestaurantID: released.RestaurantID,
		NgoID:        input.NgoID,
	})

	view := s.view(released, "")
	return &view, nil
}

func (s *BookingService) view(l *domain.Listing, ngoName string) ports.ListingView {
	v := ports.ListingView{
		ID:           l.ID,
		Name:         l.Name,
		Ingredients:  l.Ingredients,
		DietaryType:  string(l.DietaryType),
		Quantity:     l.Quantity,
		Status:       string(l.Status),
		RestaurantID: l.RestaurantID,
		NgoID:        l.NgoID,
		NgoName:      ngoName,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if l.Status == domain.StatusBooked {
		v.PickupDeadline = domain.PickupDeadline(l.UpdatedAt)
	}
	return v
}

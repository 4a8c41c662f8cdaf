package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodbridge/donation-platform/internal/api/metrics"
	"github.com/foodbridge/donation-platform/internal/core/domain"
	"github.com/foodbridge/donation-platform/internal/core/ports"
)

type ListingService struct {
	listings ports.ListingRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewListingService(listings ports.ListingRepository, users ports.UserRepository, logger zerolog.Logger) *ListingService {
	return &ListingService{listings: listings, users: users, logger: logger}
}

// Create publishes a new listing. Only restaurants may donate; the listing
// starts available with no NGO attached.
func (s *ListingService) Create(ctx context.Context, input ports.CreateListingInput) (*ports.ListingView, error) {
	if input.Role != domain.RoleRestaurant {
		return nil, fmt.Errorf("create listing: %w", domain.ErrForbidden)
	}

	now := time.Now().UTC()
	listing := &domain.Listing{
		Name:         input.Name,
		Ingredients:  input.Ingredients,
		DietaryType:  domain.DietaryType(input.DietaryType),
		Quantity:     input.Quantity,
		Status:       domain.StatusAvailable,
		RestaurantID: input.RestaurantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := listing.Validate(); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	if err := s.listings.Insert(ctx, listing); err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", input.RestaurantID).Msg("failed to create listing")
		return nil, err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(string(listing.DietaryType)).Inc()
	s.logger.Info().
		Str("listing_id", listing.ID).
		Str("restaurant_id", input.RestaurantID).
		Int("quantity", listing.Quantity).
		Msg("listing created")

	view := s.toView(ctx, listing)
	return &view, nil
}

// ListAvailable returns every available listing, newest first, with the
// owning restaurant's display name resolved.
func (s *ListingService) ListAvailable(ctx context.Context) ([]ports.ListingView, error) {
	listings, err := s.listings.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return s.toViews(ctx, listings), nil
}

// ListByRestaurant returns every listing owned by the restaurant, any status.
func (s *ListingService) ListByRestaurant(ctx context.Context, restaurantID string) ([]ports.ListingView, error) {
	if _, err := s.requireRole(ctx, restaurantID, domain.RoleRestaurant); err != nil {
		return nil, err
	}
	listings, err := s.listings.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, listings), nil
}

// History returns the restaurant's booked listings with NGO details resolved.
func (s *ListingService) History(ctx context.Context, restaurantID string) ([]ports.ListingView, error) {
	if _, err := s.requireRole(ctx, restaurantID, domain.RoleRestaurant); err != nil {
		return nil, err
	}
	listings, err := s.listings.FindBookedByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, listings), nil
}

// Orders returns the listings currently booked by the NGO.
func (s *ListingService) Orders(ctx context.Context, ngoID string) ([]ports.ListingView, error) {
	if _, err := s.requireRole(ctx, ngoID, domain.RoleNGO); err != nil {
		return nil, err
	}
	listings, err := s.listings.FindBookedByNgo(ctx, ngoID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, listings), nil
}

// Delete removes a listing. Only the owning restaurant may delete it.
func (s *ListingService) Delete(ctx context.Context, input ports.DeleteListingInput) error {
	listing, err := s.listings.FindByID(ctx, input.ListingID)
	if err != nil {
		return err
	}
	if input.Role != domain.RoleRestaurant || listing.RestaurantID != input.CallerID {
		return fmt.Errorf("delete listing: %w", domain.ErrForbidden)
	}
	if err := s.listings.Delete(ctx, input.ListingID); err != nil {
		return err
	}
	s.logger.Info().Str("listing_id", input.ListingID).Str("restaurant_id", input.CallerID).Msg("listing deleted")
	return nil
}

// requireRole resolves the user and checks it carries the expected role.
func (s *ListingService) requireRole(ctx context.Context, userID, role string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *ListingService) toView(ctx context.Context, l *domain.Listing) ports.ListingView {
	views := s.toViews(ctx, []*domain.Listing{l})
	return views[0]
}

// toViews resolves restaurant and NGO ids to display names in one batch
// lookup, mirroring what the presentation layer needs.
func (s *ListingService) toViews(ctx context.Context, listings []*domain.Listing) []ports.ListingView {
	ids := make([]string, 0, len(listings)*2)
	for _, l := range listings {
		ids = append(ids, l.RestaurantID)
		if l.NgoID != "" {
			ids = append(ids, l.NgoID)
		}
	}
	names, err := s.users.FindNamesByIDs(ctx, ids)
	if err != nil {
		// Display names are best-effort; the listing data still stands.
		s.logger.Warn().Err(err).Msg("failed to resolve user names")
		names = map[string]string{}
	}

	views := make([]ports.ListingView, 0, len(listings))
	for _, l := range listings {
		v := ports.ListingView{
			ID:             l.ID,
			Name:           l.Name,
			Ingredients:    l.Ingredients,
			DietaryType:    string(l.DietaryType),
			Quantity:       l.Quantity,
			Status:         string(l.Status),
			RestaurantID:   l.RestaurantID,
			RestaurantName: names[l.RestaurantID],
			NgoID:          l.NgoID,
			NgoName:        names[l.NgoID],
			CreatedAt:      l.CreatedAt,
			UpdatedAt:      l.UpdatedAt,
		}
		if l.Status == domain.StatusBooked {
			v.PickupDeadline = domain.PickupDeadline(l.UpdatedAt)
		}
		views = append(views, v)
	}
	return views
}

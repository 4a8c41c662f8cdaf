package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodbridge/donation-platform/internal/core/domain"
	"github.com/foodbridge/donation-platform/internal/core/ports"
)

func newListingFixture() (*stubListingRepo, *stubUserRepo, *ListingService) {
	repo := newStubListingRepo()
	users := newStubUserRepo()
	users.add(restaurantUser("rest_1"))
	users.add(ngoUser("ngo_1"))
	svc := NewListingService(repo, users, testLogger())
	return repo, users, svc
}

func TestCreateListing(t *testing.T) {
	repo, _, svc := newListingFixture()

	view, err := svc.Create(context.Background(), ports.CreateListingInput{
		Name:         "Paneer Tikka",
		Ingredients:  "paneer, yogurt, spices",
		DietaryType:  "Vegetarian",
		Quantity:     3,
		RestaurantID: "rest_1",
		Role:         domain.RoleRestaurant,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Status != string(domain.StatusAvailable) {
		t.Fatalf("status = %s, want available", view.Status)
	}
	if view.NgoID != "" {
		t.Fatalf("new listing must have no ngo attached")
	}
	if view.RestaurantName != "Spice Garden" {
		t.Fatalf("restaurant name = %q, want resolved display name", view.RestaurantName)
	}

	stored := repo.get(view.ID)
	if stored == nil {
		t.Fatalf("listing not persisted")
	}
	assertBookingInvariant(t, stored)
}

func TestCreateListing_Validation(t *testing.T) {
	_, _, svc := newListingFixture()
	ctx := context.Background()

	base := ports.CreateListingInput{
		Name:         "Paneer Tikka",
		Ingredients:  "paneer, yogurt, spices",
		DietaryType:  "Vegetarian",
		Quantity:     3,
		RestaurantID: "rest_1",
		Role:         domain.RoleRestaurant,
	}

	ngoCaller := base
	ngoCaller.Role = domain.RoleNGO
	if _, err := svc.Create(ctx, ngoCaller); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("ngo caller: got %v, want ErrForbidden", err)
	}

	zeroQty := base
	zeroQty.Quantity = 0
	if _, err := svc.Create(ctx, zeroQty); !errors.Is(err, domain.ErrInvalidListing) {
		t.Fatalf("zero quantity: got %v, want ErrInvalidListing", err)
	}

	badType := base
	badType.DietaryType = "Fruitarian"
	if _, err := svc.Create(ctx, badType); !errors.Is(err, domain.ErrInvalidListing) {
		t.Fatalf("bad dietary type: got %v, want ErrInvalidListing", err)
	}
}

func TestListAvailable(t *testing.T) {
	repo, _, svc := newListingFixture()
	now := time.Now().UTC()

	repo.add(availableListing("older", "rest_1", now.Add(-2*time.Hour)))
	repo.add(availableListing("newer", "rest_1", now.Add(-time.Hour)))
	booked := availableListing("taken", "rest_1", now)
	booked.Status = domain.StatusBooked
	booked.NgoID = "ngo_1"
	repo.add(booked)

	views, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("list available: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len = %d, want 2 (booked listing excluded)", len(views))
	}
	if views[0].ID != "newer" || views[1].ID != "older" {
		t.Fatalf("order = [%s %s], want newest first", views[0].ID, views[1].ID)
	}
	for _, v := range views {
		if v.RestaurantName != "Spice Garden" {
			t.Fatalf("restaurant name not resolved on %s", v.ID)
		}
	}

	// Idempotent re-query: same set without intervening mutation.
	again, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(again) != len(views) || again[0].ID != views[0].ID || again[1].ID != views[1].ID {
		t.Fatalf("re-query returned a different set")
	}
}

func TestHistoryAndOrders(t *testing.T) {
	repo, _, svc := newListingFixture()
	now := time.Now().UTC()

	repo.add(availableListing("open", "rest_1", now))
	booked := availableListing("claimed", "rest_1", now)
	booked.Status = domain.StatusBooked
	booked.NgoID = "ngo_1"
	booked.UpdatedAt = now
	repo.add(booked)

	history, err := svc.History(context.Background(), "rest_1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != "claimed" {
		t.Fatalf("history = %+v, want just the booked listing", history)
	}
	if history[0].NgoName != "Helping Hands" {
		t.Fatalf("ngo name not resolved in history")
	}

	orders, err := svc.Orders(context.Background(), "ngo_1")
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "claimed" {
		t.Fatalf("orders = %+v, want just the booked listing", orders)
	}
	if orders[0].PickupDeadline.IsZero() {
		t.Fatalf("pickup deadline missing on booked order")
	}

	// Identity must resolve to the right role.
	if _, err := svc.History(context.Background(), "ngo_1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("history for ngo id: got %v, want ErrUserNotFound", err)
	}
	if _, err := svc.Orders(context.Background(), "rest_1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("orders for restaurant id: got %v, want ErrUserNotFound", err)
	}
}

func TestDeleteListing_OwnerOnly(t *testing.T) {
	repo, users, svc := newListingFixture()
	users.add(restaurantUser("rest_2"))
	repo.add(availableListing("l1", "rest_1", time.Now().UTC()))
	ctx := context.Background()

	if err := svc.Delete(ctx, ports.DeleteListingInput{ListingID: "l1", CallerID: "rest_2", Role: domain.RoleRestaurant}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign restaurant: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, ports.DeleteListingInput{ListingID: "l1", CallerID: "ngo_1", Role: domain.RoleNGO}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("ngo caller: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, ports.DeleteListingInput{ListingID: "l1", CallerID: "rest_1", Role: domain.RoleRestaurant}); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if repo.get("l1") != nil {
		t.Fatalf("listing still present after delete")
	}
	if err := svc.Delete(ctx, ports.DeleteListingInput{ListingID: "l1", CallerID: "rest_1", Role: domain.RoleRestaurant}); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("second delete: got %v, want ErrListingNotFound", err)
	}
}

// Full lifecycle: create, browse, book, conflict, cancel, rebook, history.
func TestListingLifecycle(t *testing.T) {
	repo, users, listings := newListingFixture()
	users.add(ngoUser("ngo_2"))
	notifier := &stubNotifier{}
	bookings := NewBookingService(repo, users, notifier, testLogger())
	ctx := context.Background()

	created, err := listings.Create(ctx, ports.CreateListingInput{
		Name:         "Veg Thali",
		Ingredients:  "rice, dal, sabzi",
		DietaryType:  "Vegetarian",
		Quantity:     5,
		RestaurantID: "rest_1",
		Role:         domain.RoleRestaurant,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	available, _ := listings.ListAvailable(ctx)
	if len(available) != 1 || available[0].ID != created.ID {
		t.Fatalf("created listing not browsable")
	}

	if _, err := bookings.Book(ctx, ports.BookInput{ListingID: created.ID, NgoID: "ngo_1", Role: domain.RoleNGO}); err != nil {
		t.Fatalf("first book: %v", err)
	}

	available, _ = listings.ListAvailable(ctx)
	if len(available) != 0 {
		t.Fatalf("booked listing still browsable")
	}

	if _, err := bookings.Book(ctx, ports.BookInput{ListingID: created.ID, NgoID: "ngo_2", Role: domain.RoleNGO}); !errors.Is(err, domain.ErrAlreadyBooked) {
		t.Fatalf("competing book: got %v, want ErrAlreadyBooked", err)
	}

	if _, err := bookings.Cancel(ctx, ports.CancelInput{ListingID: created.ID, NgoID: "ngo_1", Role: domain.RoleNGO}); err != nil {
		t.Fatalf("cancel within window: %v", err)
	}

	available, _ = listings.ListAvailable(ctx)
	if len(available) != 1 {
		t.Fatalf("cancelled listing not browsable again")
	}

	if _, err := bookings.Book(ctx, ports.BookInput{ListingID: created.ID, NgoID: "ngo_2", Role: domain.RoleNGO}); err != nil {
		t.Fatalf("rebook: %v", err)
	}

	history, err := listings.History(ctx, "rest_1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].NgoID != "ngo_2" || history[0].Status != string(domain.StatusBooked) {
		t.Fatalf("history = %+v, want booked by ngo_2", history)
	}
}

package handler

import (
	"time"

	"github.com/foodbridge/donation-platform/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type addFoodRequest struct {
	Name        string `json:"name"        validate:"required"`
	Ingredients string `json:"ingredients" validate:"required"`
	Type        string `json:"type"        validate:"required,oneof=Vegetarian Non-Vegetarian Vegan"`
	Quantity    int    `json:"quantity"    validate:"required,min=1"`
}

type bookFoodRequest struct {
	NgoID string `json:"ngo_id" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type listingResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Ingredients    string     `json:"ingredients"`
	Type           string     `json:"type"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status"`
	RestaurantID   string     `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name,omitempty"`
	NgoID          string     `json:"ngo_id,omitempty"`
	NgoName        string     `json:"ngo_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PickupDeadline *time.Time `json:"pickup_deadline,omitempty"`
}

type ordersResponse struct {
	Orders []listingResponse `json:"orders"`
}

func toListingResponse(v ports.ListingView) listingResponse {
	r := listingResponse{
		ID:             v.ID,
		Name:           v.Name,
		Ingredients:    v.Ingredients,
		Type:           v.DietaryType,
		Quantity:       v.Quantity,
		Status:         v.Status,
		RestaurantID:   v.RestaurantID,
		RestaurantName: v.RestaurantName,
		NgoID:          v.NgoID,
		NgoName:        v.NgoName,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	if !v.PickupDeadline.IsZero() {
		deadline := v.PickupDeadline
		r.PickupDeadline = &deadline
	}
	return r
}

func toListingResponses(views []ports.ListingView) []listingResponse {
	out := make([]listingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toListingResponse(v))
	}
	return out
}

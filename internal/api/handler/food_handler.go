package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodbridge/donation-platform/internal/core/ports"
)

// FoodHandler handles HTTP requests for listing and booking operations.
type FoodHandler struct {
	listings ports.ListingService
	bookings ports.BookingService
}

func NewFoodHandler(listings ports.ListingService, bookings ports.BookingService) *FoodHandler {
	return &FoodHandler{listings: listings, bookings: bookings}
}

// Add handles POST /food/add — a restaurant publishes a new listing.
//
// @Summary      Publish a food listing
// @Tags         food
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addFoodRequest  true  "Listing details"
// @Success      201   {object}  listingResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /food/add [post]
func (h *FoodHandler) Add(c echo.Context) error {
	var req addFoodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.listings.Create(c.Request().Context(), ports.CreateListingInput{
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		DietaryType:  req.Type,
		Quantity:     req.Quantity,
		RestaurantID: userID,
		Role:         role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toListingResponse(*view))
}

// All handles GET /food/all — NGOs browse available listings.
//
// @Summary      List available food listings
// @Tags         food
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   listingResponse
// @Failure      403  {object}  errorResponse
// @Router       /food/all [get]
func (h *FoodHandler) All(c echo.Context) error {
	views, err := h.listings.ListAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListingResponses(views))
}

// Book handles POST /food/book/:foodId — an NGO claims an available listing.
// Exactly one of any set of concurrent requests for the same listing gets
// 200; the rest get 409.
//
// @Summary      Book a food listing
// @Tags         food
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        foodId  path      string           true  "Listing id"
// @Param        body    body      bookFoodRequest  true  "Booking NGO"
// @Success      200     {object}  listingResponse
// @Failure      404     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /food/book/{foodId} [post]
func (h *FoodHandler) Book(c echo.Context) error {
	var req bookFoodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.bookings.Book(c.Request().Context(), ports.BookInput{
		ListingID: c.Param("foodId"),
		NgoID:     req.NgoID,
		Role:      role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListingResponse(*view))
}

// Cancel handles PATCH /food/cancel/:id — the booking NGO releases its
// booking within the cancellation window.
//
// @Summary      Cancel a booking
// @Tags         food
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  listingResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /food/cancel/{id} [patch]
func (h *FoodHandler) Cancel(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.bookings.Cancel(c.Request().Context(), ports.CancelInput{
		ListingID: c.Param("id"),
		NgoID:     userID,
		Role:      role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListingResponse(*view))
}

// History handles GET /food/history/:restaurantId — booked listings for a
// restaurant.
//
// @Summary      Restaurant donation history
// @Tags         food
// @Produce      json
// @Security     BearerAuth
// @Param        restaurantId  path      string  true  "Restaurant id"
// @Success      200           {array}   listingResponse
// @Failure      404           {object}  errorResponse
// @Router       /food/history/{restaurantId} [get]
func (h *FoodHandler) History(c echo.Context) error {
	views, err := h.listings.History(c.Request().Context(), c.Param("restaurantId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListingResponses(views))
}

// Orders handles GET /food/orders/:ngoId — listings currently booked by an NGO.
//
// @Summary      NGO booked orders
// @Tags         food
// @Produce      json
// @Security     BearerAuth
// @Param        ngoId  path      string  true  "NGO id"
// @Success      200    {object}  ordersResponse
// @Failure      404    {object}  errorResponse
// @Router       /food/orders/{ngoId} [get]
func (h *FoodHandler) Orders(c echo.Context) error {
	views, err := h.listings.Orders(c.Request().Context(), c.Param("ngoId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersResponse{Orders: toListingResponses(views)})
}

// Listings handles GET /food/listings/:restaurantId — all listings owned by a
// restaurant, any status.
//
// @Summary      Restaurant listings
// @Tags         food
// @Produce      json
// @Security     BearerAuth
// @Param        restaurantId  path      string  true  "Restaurant id"
// @Success      200           {array}   listingResponse
// @Failure      404           {object}  errorResponse
// @Router       /food/listings/{restaurantId} [get]
func (h *FoodHandler) Listings(c echo.Context) error {
	views, err := h.listings.ListByRestaurant(c.Request().Context(), c.Param("restaurantId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListingResponses(views))
}

// Delete handles DELETE /food/delete/:id — the owning restaurant withdraws a
// listing.
//
// @Summary      Delete a listing
// @Tags         food
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Listing id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /food/delete/{id} [delete]
func (h *FoodHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.listings.Delete(c.Request().Context(), ports.DeleteListingInput{
		ListingID: c.Param("id"),
		CallerID:  userID,
		Role:      role,
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

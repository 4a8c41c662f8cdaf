package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodbridge/donation-platform/internal/api/handler"
	"github.com/foodbridge/donation-platform/internal/api/middleware"
	"github.com/foodbridge/donation-platform/internal/core/ports"
	"github.com/foodbridge/donation-platform/internal/infrastructure/http/handlers"
)

// Services bundles the use-case implementations the router exposes.
type Services struct {
	Listings ports.ListingService
	Bookings ports.BookingService
	Auth     ports.AuthService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("foodbridge"))

	authMiddleware := middleware.Auth(jwtSecret)
	restaurantOnly := middleware.RBAC("restaurant")
	ngoOnly := middleware.RBAC("ngo")
	anyRole := middleware.RBAC("restaurant", "ngo")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/send-reset-code", authHandler.SendResetCode)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Food routes ---
	foodHandler := handler.NewFoodHandler(svc.Listings, svc.Bookings)
	food := e.Group("/food", authMiddleware)
	food.POST("/add", foodHandler.Add, restaurantOnly)
	food.GET("/all", foodHandler.All, ngoOnly)
	food.POST("/book/:foodId", foodHandler.Book, ngoOnly)
	food.PATCH("/cancel/:id", foodHandler.Cancel, ngoOnly)
	food.GET("/history/:restaurantId", foodHandler.History, restaurantOnly)
	food.GET("/orders/:ngoId", foodHandler.Orders, ngoOnly)
	food.GET("/listings/:restaurantId", foodHandler.Listings, restaurantOnly)
	food.DELETE("/delete/:id", foodHandler.Delete, anyRole)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

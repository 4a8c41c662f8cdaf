package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodbridge/donation-platform/internal/api"
	"github.com/foodbridge/donation-platform/internal/core/service"
	"github.com/foodbridge/donation-platform/internal/infrastructure/db/mongo"
	"github.com/foodbridge/donation-platform/internal/infrastructure/db/redis"
	"github.com/foodbridge/donation-platform/internal/infrastructure/notify"
	"github.com/foodbridge/donation-platform/internal/pkg/config"
	"github.com/foodbridge/donation-platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	listingRepo := mongo.NewListingRepository(db)
	userRepo := mongo.NewUserRepository(db)
	if err := listingRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("listing indexes failed")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	resetCodes := redis.NewResetCodeStore(rdb)

	// --- Notification side-channel ---
	dispatcher := notify.NewDispatcher(cfg.Notifier.Workers, notify.NewLogSender(log), log)
	dispatcher.Start(ctx)

	// --- Use cases ---
	svc := api.Services{
		Listings: service.NewListingService(listingRepo, userRepo, log),
		Bookings: service.NewBookingService(listingRepo, userRepo, dispatcher, log),
		Auth:     service.NewAuthService(userRepo, resetCodes, dispatcher, cfg.JWTSecret, 7*24*time.Hour, log),
	}

	// --- Background sweeper ---
	sweeper := service.NewSweeper(listingRepo, cfg.Sweeper.Interval, cfg.Sweeper.Retention, log)
	go sweeper.Run(ctx)

	// --- HTTP server ---
	e := api.NewRouter(svc, db, rdb, cfg.JWTSecret, log)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("foodbridge api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

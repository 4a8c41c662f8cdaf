package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodbridge/donation-platform/internal/api/metrics"
	"github.com/foodbridge/donation-platform/internal/core/ports"
)

// Sweeper periodically deletes listings that stayed available past the
// retention threshold. Booked listings are never touched. A failed run is
// logged and swallowed; the next tick simply tries again.
type Sweeper struct {
	listings  ports.ListingRepository
	interval  time.Duration
	retention time.Duration
	logger    zerolog.Logger
}

func NewSweeper(listings ports.ListingRepository, interval, retention time.Duration, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		listings:  listings,
		interval:  interval,
		retention: retention,
		logger:    logger,
	}
}

// Run blocks, sweeping on every tick until ctx is cancelled. Start it in its
// own goroutine; it is independent of any request path.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.interval).
		Dur("retention", s.retention).
		Msg("expiry sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("expiry sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx, time.Now().UTC()); err != nil {
				metrics.SweeperRunsTotal.WithLabelValues("error").Inc()
				s.logger.Error().Err(err).Msg("sweep run failed")
				continue
			}
			metrics.SweeperRunsTotal.WithLabelValues("ok").Inc()
		}
	}
}

// Sweep deletes every available listing created before now minus the
// retention period and returns the number deleted. Idempotent: a second run
// with no new stale listings deletes nothing.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.retention)
	deleted, err := s.listings.DeleteStaleAvailable(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		metrics.SweeperDeletedTotal.Add(float64(deleted))
		s.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("stale listings swept")
	}
	return deleted, nil
}

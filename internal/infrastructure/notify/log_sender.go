package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/foodbridge/donation-platform/internal/core/ports"
)

// LogSender is the in-tree NotificationSender: it records each notification
// in the structured log. Real delivery (email, SMS) is an external
// collaborator this service only hands off to.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n ports.Notification) error {
	evt := s.log.Info().Str("kind", n.Kind)
	switch n.Kind {
	case "reset_code":
		evt = evt.Str("email", n.Email)
	default:
		evt = evt.
			Str("listing_id", n.ListingID).
			Str("listing_name", n.ListingName).
			Str("restaurant_id", n.RestaurantID).
			Str("ngo_id", n.NgoID)
		if !n.PickupDeadline.IsZero() {
			evt = evt.Time("pickup_deadline", n.PickupDeadline)
		}
	}
	evt.Msg("notification dispatched")
	return nil
}

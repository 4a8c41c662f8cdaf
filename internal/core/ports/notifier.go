package ports

import (
	"context"
	"time"
)

// Notification is a message for the external notification side-channel.
type Notification struct {
	// Kind is one of "booked", "cancelled", "reset_code".
	Kind           string
	ListingID      string
	ListingName    string
	RestaurantID   string
	NgoID          string
	Email          string
	Code           string
	PickupDeadline time.Time
}

// Notifier accepts notifications for asynchronous delivery. Enqueue must not
// block the caller beyond buffering and must never surface delivery failures:
// a booking that already succeeded is never rolled back because an email
// could not be sent.
type Notifier interface {
	Enqueue(n Notification)
}

// NotificationSender performs the actual delivery of a single notification.
type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}

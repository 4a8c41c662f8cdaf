package ports

import (
	"context"

	"github.com/foodbridge/donation-platform/internal/core/domain"
)

// RegisterInput carries a signup request. GSTNumber is required for
// restaurants, DarpanID for NGOs.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	Role      string
	GSTNumber string
	DarpanID  string
}

// AuthService handles registration, login, and the password-reset flow.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// SendResetCode generates a one-time code for the account and hands it to
	// the notification side-channel.
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// ResetCodeStore keeps one-time password-reset codes keyed by email, each
// expiring on its own TTL.
type ResetCodeStore interface {
	Put(ctx context.Context, email, code string) error
	// Get returns the stored code, or domain.ErrInvalidResetCode when no
	// live code exists for the email.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

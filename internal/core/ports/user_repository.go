package ports

import (
	"context"

	"github.com/foodbridge/donation-platform/internal/core/domain"
)

// UserRepository defines the interface for user identity persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindNamesByIDs resolves a set of user ids to their display names.
	// Unknown ids are simply absent from the result.
	FindNamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

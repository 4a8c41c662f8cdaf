package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodbridge/donation-platform/internal/core/domain"
)

const resetCodeTTL = 10 * time.Minute

// ResetCodeStore keeps password-reset one-time codes in Redis, keyed by email
// with per-entry expiry. Key format: reset_code:<email>
type ResetCodeStore struct {
	client *redis.Client
}

// NewResetCodeStore creates a ResetCodeStore wrapping the given Redis client.
func NewResetCodeStore(client *redis.Client) *ResetCodeStore {
	return &ResetCodeStore{client: client}
}

// Put stores the code for the email, replacing any earlier one and restarting
// the TTL.
func (s *ResetCodeStore) Put(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, s.key(email), code, resetCodeTTL).Err()
}

// Get returns the live code for the email, or domain.ErrInvalidResetCode when
// none exists or it has expired.
func (s *ResetCodeStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidResetCode
		}
		return "", fmt.Errorf("reset code get: %w", err)
	}
	return code, nil
}

// Delete removes the code after a successful reset.
func (s *ResetCodeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}

func (s *ResetCodeStore) key(email string) string {
	return "reset_code:" + email
}

package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodbridge/donation-platform/internal/core/domain"
	"github.com/foodbridge/donation-platform/internal/core/ports"
)

// AuthService implements registration, login, and the password-reset flow.
// Reset codes live in a TTL-keyed store rather than process memory, so they
// expire on their own and survive nothing they shouldn't.
type AuthService struct {
	users      ports.UserRepository
	resetCodes ports.ResetCodeStore
	notifier   ports.Notifier
	jwtSecret  string
	tokenTTL   time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, resetCodes ports.ResetCodeStore, notifier ports.Notifier, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		resetCodes: resetCodes,
		notifier:   notifier,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Phone == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	// Role-specific registry numbers, per the onboarding rules.
	if input.Role == domain.RoleRestaurant && input.GSTNumber == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Role == domain.RoleNGO && input.DarpanID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch input.Role {
	case domain.RoleRestaurant:
		user.GSTNumber = input.GSTNumber
	case domain.RoleNGO:
		user.DarpanID = input.DarpanID
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// SendResetCode stores a one-time code under the account's email and hands it
// to the notification side-channel for delivery.
func (s *AuthService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	if err := s.resetCodes.Put(ctx, user.Email, code); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	s.notifier.Enqueue(ports.Notification{
		Kind:  "reset_code",
		Email: user.Email,
		Code:  code,
	})
	s.logger.Info().Str("user_id", user.ID).Msg("reset code issued")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	stored, err := s.resetCodes.Get(ctx, email)
	if err != nil {
		return err
	}
	if stored != code {
		return domain.ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		return err
	}

	// Codes are single-use; the TTL still bounds a failed delete.
	if err := s.resetCodes.Delete(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear reset code")
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateResetCode returns a random 6-digit code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

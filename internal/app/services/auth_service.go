package services

import (
	"context"
	"errors"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
	"github.com/dadl-lab/labsite/internal/pkg/auth"
	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// AdminUserStore is the subset of the admin user repository the auth
// service needs.
type AdminUserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*models.AdminUser, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// AuthService verifies admin credentials and manages passwords
type AuthService struct {
	users AdminUserStore
}

// NewAuthService creates a new AuthService
func NewAuthService(users AdminUserStore) *AuthService {
	return &AuthService{users: users}
}

// VerifyCredentials checks a username/password pair. Unknown usernames and
// wrong passwords both come back as ErrInvalidCredentials so the login form
// can't be used to enumerate accounts.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*models.AdminUser, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Warn().Str("username", username).Msg("Login attempt for unknown username")
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.Error().Err(err).Str("username", username).Msg("Failed to look up admin user")
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		logger.Warn().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser loads an admin user by id, for resolving the session identity
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.AdminUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrAdminUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetPassword hashes and stores a new password for the given admin user
func (s *AuthService) SetPassword(ctx context.Context, userID int64, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrAdminUserNotFound
		}
		return err
	}

	logger.Info().Int64("user_id", userID).Msg("Admin password updated")
	return nil
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
	"github.com/dadl-lab/labsite/internal/pkg/auth"
)

// fakeAdminUserStore is an in-memory AdminUserStore for tests
type fakeAdminUserStore struct {
	users map[string]*models.AdminUser
}

func newFakeAdminUserStore(users ...*models.AdminUser) *fakeAdminUserStore {
	store := &fakeAdminUserStore{users: make(map[string]*models.AdminUser)}
	for _, u := range users {
		store.users[u.Username] = u
	}
	return store
}

func (f *fakeAdminUserStore) GetByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAdminUserStore) GetByID(_ context.Context, id int64) (*models.AdminUser, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAdminUserStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	for _, user := range f.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return repositories.ErrNotFound
}

func testAdminUser(t *testing.T, username, password string) *models.AdminUser {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.AdminUser{ID: 1, Username: username, PasswordHash: hash, Name: "Admin"}
}

func TestVerifyCredentials(t *testing.T) {
	service := NewAuthService(newFakeAdminUserStore(testAdminUser(t, "admin", "changeme123")))
	ctx := context.Background()

	// Two bad attempts, then the right password
	_, err := service.VerifyCredentials(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = service.VerifyCredentials(ctx, "admin", "also-wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	user, err := service.VerifyCredentials(ctx, "admin", "changeme123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

func TestVerifyCredentialsUnknownUsername(t *testing.T) {
	service := NewAuthService(newFakeAdminUserStore())

	_, err := service.VerifyCredentials(context.Background(), "ghost", "whatever")
	// Indistinguishable from a wrong password
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestSetPassword(t *testing.T) {
	store := newFakeAdminUserStore(testAdminUser(t, "admin", "old-password"))
	service := NewAuthService(store)
	ctx := context.Background()

	require.NoError(t, service.SetPassword(ctx, 1, "new-password"))

	_, err := service.VerifyCredentials(ctx, "admin", "old-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = service.VerifyCredentials(ctx, "admin", "new-password")
	assert.NoError(t, err)
}

func TestSetPasswordUnknownUser(t *testing.T) {
	service := NewAuthService(newFakeAdminUserStore())

	err := service.SetPassword(context.Background(), 42, "whatever")
	assert.ErrorIs(t, err, apperrors.ErrAdminUserNotFound)
}

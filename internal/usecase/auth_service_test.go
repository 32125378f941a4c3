package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *entity.User) {
	t.Helper()
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	user := &entity.User{
		ID:           1,
		Email:        "ops@example.com",
		PasswordHash: hash,
		Active:       true,
		Role: &entity.Role{
			Name:        "operator",
			Permissions: []entity.Permission{{Key: "manifests:write"}},
		},
	}
	repo := &fakeUserRepo{users: map[string]*entity.User{user.Email: user}}
	return NewAuthService(repo, "test-secret", time.Hour, logger.NewNop()), user
}

func TestLoginAndVerify(t *testing.T) {
	svc, user := newTestAuthService(t)

	token, loggedIn, err := svc.Login(context.Background(), "ops@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	verified, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.True(t, verified.HasPermission("manifests:write"))
	assert.False(t, verified.HasPermission("catalog:write"))
}

func TestLoginRejections(t *testing.T) {
	svc, user := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "ops@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user.Active = false
	_, _, err = svc.Login(context.Background(), "ops@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.VerifyToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Token signed with a different secret.
	other := NewAuthService(&fakeUserRepo{users: map[string]*entity.User{}}, "other-secret", time.Hour, logger.NewNop())
	_ = other
	token, _, err := svc.Login(context.Background(), "ops@example.com", "s3cret")
	require.NoError(t, err)
	_, err = other.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestExpiredTokenRejected(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	user := &entity.User{ID: 1, Email: "ops@example.com", PasswordHash: hash, Active: true}
	repo := &fakeUserRepo{users: map[string]*entity.User{user.Email: user}}

	svc := NewAuthService(repo, "test-secret", -time.Minute, logger.NewNop())
	token, _, err := svc.Login(context.Background(), "ops@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

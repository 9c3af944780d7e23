package services

import (
	"context"
	"testing"
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/config"
	"lexcase/internal/core/domain"
	"lexcase/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceForTest(users *fakeUserRepo, resets *fakeResetRepo) *AuthService {
	return NewAuthService(
		users,
		newFakeProfileRepo(),
		resets,
		nil,
		config.JWTConfig{Secret: "test-secret", AccessTokenMins: 15},
		"http://localhost:3000",
	)
}

func activeUser(t *testing.T, id uint, plain string) *models.User {
	t.Helper()
	hashed, err := password.Hash(plain)
	require.NoError(t, err)
	return &models.User{
		ID:       id,
		Email:    "mina.rahman@example.com",
		Password: hashed,
		Role:     models.RoleClient,
		IsActive: true,
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("too short new password is a rule error", func(t *testing.T) {
		users := newFakeUserRepo(activeUser(t, 1, "current-pass-1"))
		svc := newAuthServiceForTest(users, newFakeResetRepo())

		err := svc.ChangePassword(ctx, 1, ChangePasswordInput{
			CurrentPassword: "current-pass-1",
			NewPassword:     "short",
		})
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Empty(t, users.updated)
	})

	t.Run("wrong current password", func(t *testing.T) {
		users := newFakeUserRepo(activeUser(t, 1, "current-pass-1"))
		svc := newAuthServiceForTest(users, newFakeResetRepo())

		err := svc.ChangePassword(ctx, 1, ChangePasswordInput{
			CurrentPassword: "not-the-password",
			NewPassword:     "brand-new-pass-9",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
		assert.Empty(t, users.updated)
	})

	t.Run("valid change rehashes the password", func(t *testing.T) {
		users := newFakeUserRepo(activeUser(t, 1, "current-pass-1"))
		svc := newAuthServiceForTest(users, newFakeResetRepo())

		err := svc.ChangePassword(ctx, 1, ChangePasswordInput{
			CurrentPassword: "current-pass-1",
			NewPassword:     "brand-new-pass-9",
		})
		require.NoError(t, err)
		require.Len(t, users.updated, 1)
		assert.True(t, password.Verify("brand-new-pass-9", users.users[1].Password))
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	const token = "a3f1c0de-feed-4bad-9c0f-0123456789ab"

	freshReset := func() *models.PasswordReset {
		return &models.PasswordReset{
			ID:        3,
			UserID:    1,
			TokenHash: password.HashToken(token),
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	t.Run("too short new password is a rule error", func(t *testing.T) {
		users := newFakeUserRepo(activeUser(t, 1, "current-pass-1"))
		resets := newFakeResetRepo(freshReset())
		svc := newAuthServiceForTest(users, resets)

		err := svc.ResetPassword(ctx, token, "short")
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Empty(t, users.updated)
		assert.Empty(t, resets.used, "a rejected reset must not consume the token")
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeResetRepo())
		err := svc.ResetPassword(ctx, token, "brand-new-pass-9")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		reset := freshReset()
		reset.ExpiresAt = time.Now().Add(-time.Minute)
		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeResetRepo(reset))

		err := svc.ResetPassword(ctx, token, "brand-new-pass-9")
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("valid reset consumes the token", func(t *testing.T) {
		users := newFakeUserRepo(activeUser(t, 1, "current-pass-1"))
		resets := newFakeResetRepo(freshReset())
		svc := newAuthServiceForTest(users, resets)

		err := svc.ResetPassword(ctx, token, "brand-new-pass-9")
		require.NoError(t, err)
		assert.True(t, password.Verify("brand-new-pass-9", users.users[1].Password))
		assert.Equal(t, []uint{3}, resets.used)
	})
}

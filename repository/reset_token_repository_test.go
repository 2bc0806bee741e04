package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
)

func seedUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Roles: []string{models.RoleUser}}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestResetTokenRepo_CreateAndGetByHash(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteResetTokenRepo(db.Conn)
	ctx := context.Background()

	user := seedUser(t, userRepo, "reset@example.com")

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: "abc123hash",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, repo.Create(ctx, token))
	assert.NotEmpty(t, token.ID)

	got, err := repo.GetByTokenHash(ctx, "abc123hash")
	require.NoError(t, err)
	assert.Equal(t, token.ID, got.ID)
	assert.Equal(t, user.ID, got.UserID)

	_, err = repo.GetByTokenHash(ctx, "unknown")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestResetTokenRepo_Consume_SingleUse(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteResetTokenRepo(db.Conn)
	ctx := context.Background()

	user := seedUser(t, userRepo, "once@example.com")

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: "onetime",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, repo.Create(ctx, token))

	// İlk tüketim başarılı, ikincisi ErrNotFound — compare-and-delete.
	require.NoError(t, repo.Consume(ctx, token.ID))
	assert.ErrorIs(t, repo.Consume(ctx, token.ID), pkg.ErrNotFound)

	_, err := repo.GetByTokenHash(ctx, "onetime")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestResetTokenRepo_DeleteByUserID(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteResetTokenRepo(db.Conn)
	ctx := context.Background()

	user := seedUser(t, userRepo, "multi@example.com")
	other := seedUser(t, userRepo, "other@example.com")

	for _, hash := range []string{"h1", "h2"} {
		require.NoError(t, repo.Create(ctx, &models.PasswordResetToken{
			UserID: user.ID, TokenHash: hash, ExpiresAt: time.Now().Add(time.Hour).UTC(),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.PasswordResetToken{
		UserID: other.ID, TokenHash: "keep", ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}))

	require.NoError(t, repo.DeleteByUserID(ctx, user.ID))

	_, err := repo.GetByTokenHash(ctx, "h1")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	_, err = repo.GetByTokenHash(ctx, "h2")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// Diğer kullanıcının token'ı durur.
	_, err = repo.GetByTokenHash(ctx, "keep")
	assert.NoError(t, err)
}

func TestResetTokenRepo_DeleteExpired(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteResetTokenRepo(db.Conn)
	ctx := context.Background()

	user := seedUser(t, userRepo, "expired@example.com")

	require.NoError(t, repo.Create(ctx, &models.PasswordResetToken{
		UserID: user.ID, TokenHash: "stale", ExpiresAt: time.Now().Add(-time.Hour).UTC(),
	}))
	require.NoError(t, repo.Create(ctx, &models.PasswordResetToken{
		UserID: user.ID, TokenHash: "fresh", ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}))

	require.NoError(t, repo.DeleteExpired(ctx))

	_, err := repo.GetByTokenHash(ctx, "stale")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	_, err = repo.GetByTokenHash(ctx, "fresh")
	assert.NoError(t, err)
}

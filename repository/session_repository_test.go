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

func TestSessionRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteSessionRepo(db.Conn)
	ctx := context.Background()

	user := seedUser(t, userRepo, "session@example.com")

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: "refresh-abc",
		ExpiresAt:    time.Now().Add(24 * time.Hour).UTC(),
	}
	require.NoError(t, repo.Create(ctx, session))
	assert.NotEmpty(t, session.ID)

	got, err := repo.GetByRefreshToken(ctx, "refresh-abc")
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, user.ID, got.UserID)

	_, err = repo.GetByRefreshToken(ctx, "unknown")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestSessionRepo_DeleteByID(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteSessionRepo(db.Conn)
	ctx := context.Background()

	user := seedUser(t, userRepo, "del@example.com")

	session := &models.Session{
		UserID: user.ID, RefreshToken: "tok", ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, repo.Create(ctx, session))
	require.NoError(t, repo.DeleteByID(ctx, session.ID))

	_, err := repo.GetByRefreshToken(ctx, "tok")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestSessionRepo_DeleteByUserID(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteSessionRepo(db.Conn)
	ctx := context.Background()

	user := seedUser(t, userRepo, "all@example.com")
	other := seedUser(t, userRepo, "keep@example.com")

	for _, tok := range []string{"t1", "t2"} {
		require.NoError(t, repo.Create(ctx, &models.Session{
			UserID: user.ID, RefreshToken: tok, ExpiresAt: time.Now().Add(time.Hour).UTC(),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Session{
		UserID: other.ID, RefreshToken: "other-tok", ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}))

	require.NoError(t, repo.DeleteByUserID(ctx, user.ID))

	_, err := repo.GetByRefreshToken(ctx, "t1")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	_, err = repo.GetByRefreshToken(ctx, "other-tok")
	assert.NoError(t, err)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/youness/libris/database"
	"github.com/youness/libris/repository"
)

// testEnv, service testleri için in-memory DB + repo'ları bir arada tutar.
type testEnv struct {
	db          *database.DB
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	authorRepo  repository.AuthorRepository
	bookRepo    repository.BookRepository
	resetRepo   repository.PasswordResetRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(":memory:", database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &testEnv{
		db:          db,
		userRepo:    repository.NewSQLiteUserRepo(db.Conn),
		sessionRepo: repository.NewSQLiteSessionRepo(db.Conn),
		authorRepo:  repository.NewSQLiteAuthorRepo(db.Conn),
		bookRepo:    repository.NewSQLiteBookRepo(db.Conn),
		resetRepo:   repository.NewSQLiteResetTokenRepo(db.Conn),
	}
}

// fakeSender, gönderilen son token'ı yakalayan test email sender'ı.
type fakeSender struct {
	lastEmail string
	lastToken string
	fail      bool
}

func (f *fakeSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	if f.fail {
		return context.DeadlineExceeded
	}
	f.lastEmail = toEmail
	f.lastToken = token
	return nil
}

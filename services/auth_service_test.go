package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
)

const testJWTSecret = "test-secret-key-for-signing"

func newAuthService(env *testEnv) AuthService {
	return NewAuthService(env.userRepo, env.sessionRepo, testJWTSecret, 15, 7)
}

func TestAuthService_Register_FirstUserBecomesAdmin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	first, err := svc.Register(ctx, &models.RegisterRequest{
		Email: "admin@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.True(t, first.HasRole(models.RoleAdmin))
	assert.True(t, first.HasRole(models.RoleUser))

	second, err := svc.Register(ctx, &models.RegisterRequest{
		Email: "reader@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.False(t, second.HasRole(models.RoleAdmin))
	assert.True(t, second.HasRole(models.RoleUser))
}

func TestAuthService_Register_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"empty email", models.RegisterRequest{Password: "password123"}},
		{"empty password", models.RegisterRequest{Email: "a@b.co"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tc.req)
			assert.ErrorIs(t, err, pkg.ErrBadRequest)
		})
	}
}

func TestAuthService_Register_NoFormatOrLengthPolicy(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	// Kayıt boşluk dışında kural koymaz: email format regex'ine takılmaz,
	// kısa şifre reddedilmez.
	user, err := svc.Register(ctx, &models.RegisterRequest{
		Email: "not-an-email", Password: "short",
	})
	require.NoError(t, err)
	assert.Equal(t, "not-an-email", user.Email)

	// Aynı bilgilerle giriş de çalışmalı.
	tokens, err := svc.Login(ctx, &models.LoginRequest{Email: "not-an-email", Password: "short"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Email: "dup@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &models.RegisterRequest{Email: "dup@example.com", Password: "password123"})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestAuthService_Register_NeverEchoesHash(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email: "safe@example.com", Password: "password123",
	})
	require.NoError(t, err)

	// Hash DB'de bcrypt olmalı, plaintext asla saklanmaz.
	stored, err := env.userRepo.GetByEmail(context.Background(), "safe@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &models.LoginRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Empty(t, tokens.User.PasswordHash)

	// Access token doğrulanabilir olmalı ve rolleri taşımalı.
	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, claims.UserID)
	assert.Contains(t, claims.Roles, models.RoleAdmin)
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Email: "known@example.com", Password: "password123"})
	require.NoError(t, err)

	// Yanlış şifre ve bilinmeyen email aynı hatayı üretmeli.
	_, errWrongPass := svc.Login(ctx, &models.LoginRequest{Email: "known@example.com", Password: "wrongpass1"})
	_, errUnknown := svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "password123"})

	assert.ErrorIs(t, errWrongPass, pkg.ErrUnauthorized)
	assert.ErrorIs(t, errUnknown, pkg.ErrUnauthorized)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestAuthService_RefreshToken_Rotation(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Email: "rot@example.com", Password: "password123"})
	require.NoError(t, err)
	tokens, err := svc.Login(ctx, &models.LoginRequest{Email: "rot@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	// Eski refresh token artık geçersiz — rotation.
	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Email: "out@example.com", Password: "password123"})
	require.NoError(t, err)
	tokens, err := svc.Login(ctx, &models.LoginRequest{Email: "out@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// Bilinmeyen token ile logout idempotent.
	assert.NoError(t, svc.Logout(ctx, "never-existed"))
}

func TestAuthService_ValidateAccessToken_Invalid(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	_, err := svc.ValidateAccessToken("garbage.token.here")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

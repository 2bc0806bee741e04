// Package services — Şifre sıfırlama akışı.
//
// İki adımlı flow:
//  1. RequestReset: email'e tek kullanımlık token gönderilir.
//  2. ResetPassword: token doğrulanır, şifre değiştirilir, token yakılır.
//
// Güvenlik notları:
//   - Token veritabanında SHA256 hash olarak saklanır. DB sızıntısında
//     bile saldırgan plaintext token'ı elde edemez.
//   - Token tek kullanımlıktır: redeem sırasında compare-and-delete ile
//     silinir, yarışan ikinci istek kaybeder.
//   - Şifre güncelleme + token silme tek transaction'da yapılır.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/youness/libris/database"
	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
	"github.com/youness/libris/pkg/email"
	"github.com/youness/libris/repository"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetService interface'i.
type PasswordResetService interface {
	// RequestReset, kullanıcıya şifre sıfırlama emaili gönderir.
	// Email kayıtlı değilse pkg.ErrNotFound döner.
	RequestReset(ctx context.Context, req *models.RequestPasswordResetRequest) error

	// ResetPassword, geçerli bir token ile yeni şifreyi kaydeder.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// passwordResetService, implementasyon.
//
// now alanı test edilebilirlik için inject edilir: expiry testlerinde
// sabit bir saat geçilir, production'da time.Now kullanılır.
type passwordResetService struct {
	db          *sql.DB
	userRepo    repository.UserRepository
	resetRepo   repository.PasswordResetRepository
	sessionRepo repository.SessionRepository
	sender      email.Sender
	tokenExp    time.Duration
	now         func() time.Time
}

// NewPasswordResetService, constructor.
// sender nil olabilir (email konfigüre edilmemiş) — RequestReset o durumda
// 500 döner, token sessizce kaybolmaz.
func NewPasswordResetService(
	db *sql.DB,
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	sessionRepo repository.SessionRepository,
	sender email.Sender,
	tokenExpMinutes int,
) PasswordResetService {
	return &passwordResetService{
		db:          db,
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		sessionRepo: sessionRepo,
		sender:      sender,
		tokenExp:    time.Duration(tokenExpMinutes) * time.Minute,
		now:         time.Now,
	}
}

// RequestReset, şifre sıfırlama isteğini işler.
//
// Bilinmeyen email için 404 döner. Bu bilinçli bir davranış: API
// email'in kayıtlı olup olmadığını söyler. Enumeration'a kapatmak
// istenirse burası "her durumda 200" olarak değiştirilebilir —
// şimdilik istemcinin hatalı email'i fark edebilmesi tercih edildi.
func (s *passwordResetService) RequestReset(ctx context.Context, req *models.RequestPasswordResetRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: user not found", pkg.ErrNotFound)
		}
		return err
	}

	if s.sender == nil {
		return fmt.Errorf("%w: email delivery is not configured", pkg.ErrInternal)
	}

	// Fırsat temizliği: süresi dolmuş token'ları sil.
	if err := s.resetRepo.DeleteExpired(ctx); err != nil {
		return err
	}

	// Kullanıcının önceki token'larını geçersiz kıl — aynı anda tek
	// geçerli reset linki olur.
	if err := s.resetRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}

	// 32 byte crypto/rand → 64 karakter hex. Plaintext sadece email'de yaşar.
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	rawToken := hex.EncodeToString(rawBytes)

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.tokenExp),
	}

	if err := s.resetRepo.Create(ctx, token); err != nil {
		return err
	}

	if err := s.sender.SendPasswordReset(ctx, user.Email, rawToken); err != nil {
		// Email gitmediyse token'ı bırakma — kullanıcı tekrar istesin.
		_ = s.resetRepo.Consume(ctx, token.ID)
		return fmt.Errorf("%w: failed to send reset email", pkg.ErrInternal)
	}

	return nil
}

// ResetPassword, token'ı doğrular ve şifreyi günceller.
//
// Geçersiz, süresi dolmuş veya daha önce kullanılmış token'ların hepsi
// aynı hatayı üretir — istemci token durumları arasında ayrım yapamaz.
func (s *passwordResetService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	token, err := s.resetRepo.GetByTokenHash(ctx, hashToken(req.Token))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrBadRequest)
		}
		return err
	}

	if s.now().After(token.ExpiresAt) {
		_ = s.resetRepo.Consume(ctx, token.ID)
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Atomik blok: token yakma + şifre güncelleme + aktif oturumları düşürme.
	// Consume'un compare-and-delete'i transaction içinde çalışır — yarışan
	// iki redeem'den yalnızca biri commit eder.
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txResetRepo := repository.NewSQLiteResetTokenRepo(tx)
		txUserRepo := repository.NewSQLiteUserRepo(tx)
		txSessionRepo := repository.NewSQLiteSessionRepo(tx)

		if err := txResetRepo.Consume(ctx, token.ID); err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrBadRequest)
			}
			return err
		}

		if err := txUserRepo.UpdatePassword(ctx, token.UserID, string(hash)); err != nil {
			return err
		}

		// Şifre değişti — eldeki tüm refresh token'lar geçersiz olmalı.
		return txSessionRepo.DeleteByUserID(ctx, token.UserID)
	})

	return err
}

// hashToken, plaintext token'ın SHA256 hex digest'ini üretir.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/youness/libris/config"
	"github.com/youness/libris/pkg/email"
	"github.com/youness/libris/pkg/ratelimit"
	"github.com/youness/libris/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth          services.AuthService
	Author        services.AuthorService
	Book          services.BookService
	Image         services.ImageService
	PasswordReset services.PasswordResetService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login *ratelimit.LoginRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
func initServices(db *sql.DB, repos *Repositories, cfg *config.Config) (*Services, *RateLimiters, error) {
	// ─── Email service (opsiyonel) ───
	var emailSender email.Sender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AppURL != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] email service disabled (RESEND_API_KEY, RESEND_FROM or APP_URL not set)")
	}

	imageService, err := services.NewImageService(cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init image service: %w", err)
	}

	authService := services.NewAuthService(
		repos.User, repos.Session,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)

	authorService := services.NewAuthorService(repos.Author, repos.Book)
	bookService := services.NewBookService(repos.Book, repos.Author, imageService)

	resetService := services.NewPasswordResetService(
		db, repos.User, repos.ResetToken, repos.Session,
		emailSender, cfg.Reset.TokenExpiryMinutes,
	)

	// ─── Rate Limiters ───
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)

	svcs := &Services{
		Auth:          authService,
		Author:        authorService,
		Book:          bookService,
		Image:         imageService,
		PasswordReset: resetService,
	}

	limiters := &RateLimiters{
		Login: loginLimiter,
	}

	return svcs, limiters, nil
}

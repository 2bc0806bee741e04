// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/youness/libris/config"
	"github.com/youness/libris/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Author        *handlers.AuthorHandler
	Book          *handlers.BookHandler
	PasswordReset *handlers.PasswordResetHandler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:          handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Author:        handlers.NewAuthorHandler(svcs.Author),
		Book:          handlers.NewBookHandler(svcs.Book, cfg.Upload.MaxSize),
		PasswordReset: handlers.NewPasswordResetHandler(svcs.PasswordReset),
	}
}

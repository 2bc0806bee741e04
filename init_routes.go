// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT token doğrulaması
//   - authAdmin: auth + ROLE_ADMIN kontrolü
package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/youness/libris/middleware"
	"github.com/youness/libris/models"
	"github.com/youness/libris/repository"
	"github.com/youness/libris/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	uploadDir string,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	roleMw := middleware.NewRoleMiddleware()

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	authAdmin := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(roleMw.Require(models.RoleAdmin, http.HandlerFunc(handler)))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"libris"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/register", h.Auth.Register)
	mux.HandleFunc("POST /api/login", h.Auth.Login)
	mux.HandleFunc("POST /api/token/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/logout", h.Auth.Logout)

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))

	// Password reset — public, email üzerinden doğrulanır
	mux.HandleFunc("POST /api/request-password-reset", h.PasswordReset.RequestReset)
	mux.HandleFunc("POST /api/reset-password", h.PasswordReset.Reset)
	mux.HandleFunc("GET /reset-password-page/{token}", h.PasswordReset.ResetPage)

	// Books — okuma ve silme herkese açık, yazma admin ister
	mux.HandleFunc("GET /api/books", h.Book.GetPage)
	mux.HandleFunc("GET /api/books/{id}", h.Book.GetByID)
	mux.HandleFunc("DELETE /api/books/{id}", h.Book.Delete)
	mux.Handle("POST /api/books", authAdmin(h.Book.Create))
	// HTML formları PUT gönderemediği için update POST olarak da kabul edilir.
	mux.Handle("PUT /api/books/{id}", authAdmin(h.Book.Update))
	mux.Handle("POST /api/books/{id}", authAdmin(h.Book.Update))

	// Authors — tamamı admin
	mux.Handle("GET /api/author", authAdmin(h.Author.GetAll))
	mux.Handle("GET /api/author/{id}", authAdmin(h.Author.GetByID))
	mux.Handle("POST /api/author", authAdmin(h.Author.Create))
	mux.Handle("PUT /api/author/{id}", authAdmin(h.Author.Update))
	mux.Handle("DELETE /api/author/{id}", authAdmin(h.Author.Delete))

	// Static file serving — kitap kapak görselleri
	//
	// http.StripPrefix: URL'den "/api/uploads/" kısmını çıkarır.
	// http.FileServer: Kalan path'i upload dizininde dosya olarak arar.
	//
	// Path traversal koruması:
	// http.FileServer zaten ".." path'lerini reddeder.
	// Ek güvenlik için sadece düz dosya isimlerini kabul edip subdirectory'leri reddediyoruz.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(uploadDir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)
}

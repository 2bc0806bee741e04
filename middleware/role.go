// Package middleware — RoleMiddleware, rol bazlı yetki kontrolü.
//
// AuthMiddleware'den SONRA çalışır — context'te user bilgisi mevcuttur.
// Rol kontrolü handler'a ve veritabanına HİÇ dokunmadan yapılır:
// yetkisiz istek 403 ile burada durur.
//
// Kullanım:
//
//	authMw.Require(roleMw.Require(models.RoleAdmin, http.HandlerFunc(authorHandler.Create)))
package middleware

import (
	"net/http"

	"github.com/youness/libris/handlers"
	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
)

// RoleMiddleware, belirli bir rolü zorunlu kılan middleware.
type RoleMiddleware struct{}

// NewRoleMiddleware, constructor.
func NewRoleMiddleware() *RoleMiddleware {
	return &RoleMiddleware{}
}

// Require, context'teki kullanıcıda verilen rol yoksa 403 döner.
// Mesaj sabittir — hangi kaynağın korunduğunu sızdırmaz.
func (m *RoleMiddleware) Require(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		if !user.HasRole(role) {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "insufficient privileges")
			return
		}

		next.ServeHTTP(w, r)
	})
}

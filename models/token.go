package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
//
// Roller claim olarak taşınır ama yetki kontrolü middleware'da DB'den okunan
// güncel kullanıcı üzerinden yapılır — rol değişikliği token süresi boyunca
// beklemez.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, middleware) tarafından kullanılır — circular dependency önlenir.
type TokenClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

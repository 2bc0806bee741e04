package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Rol sabitleri. Go'da enum yoktur — typed constant yerine burada düz string
// kullanılır çünkü roller DB'de JSON array olarak saklanır.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User, bir hesabı temsil eder.
// PasswordHash json:"-" ile API response'larından gizlenir.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole, kullanıcının verilen role sahip olup olmadığını döner.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// RegisterRequest, kayıt olurken gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, RegisterRequest geçerlilik kontrolü.
//
// Bilinçli olarak SADECE boşluk kontrolü yapılır: email format regex'i veya
// minimum şifre uzunluğu YOKTUR. Kayıt "not-an-email" gibi bir adresi ve tek
// karakterlik şifreyi kabul eder.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)

	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// LoginRequest, giriş yaparken gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest geçerlilik kontrolü.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

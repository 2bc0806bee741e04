// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda API'den
// gelen/giden verilerin şeklini de belirler. Request struct'ları HTTP
// body'den parse edilir ve Validate() ile kontrol edilir.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Author, bir kitap yazarını temsil eder.
type Author struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorRequest, yazar oluşturma/güncelleme isteği.
// Create ve Update aynı alanları ister — iki ayrı struct gerekmedi.
type AuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate, her iki ismin de boş olmadığını kontrol eder.
func (r *AuthorRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	if r.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if r.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	return nil
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// Book, katalogdaki bir kitabı temsil eder.
//
// Image: Kapak görselinin URL path'i (/api/uploads/{dosya}). Görsel yüklenmemişse nil.
// Author: Nested public yazar bilgisi. Kitap oluşturulurken geçersiz idAuthor
// verilmişse nil kalır — bu davranış bilinçli olarak korunur.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CoverText string    `json:"cover_text"`
	Image     *string   `json:"image"`
	Author    *Author   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// BookRequest, multipart form'dan parse edilen kitap oluşturma/güncelleme verisi.
// Form alan adları API sözleşmesinden gelir: title, coverText, idAuthor.
type BookRequest struct {
	Title     string
	CoverText string
	IDAuthor  string
}

// Validate, title ve coverText'in boş olmadığını kontrol eder.
// idAuthor kontrolü burada YAPILMAZ — create null yazar bağlar,
// update service katmanında reddeder.
func (r *BookRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.CoverText = strings.TrimSpace(r.CoverText)
	r.IDAuthor = strings.TrimSpace(r.IDAuthor)

	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.CoverText == "" {
		return fmt.Errorf("coverText is required")
	}
	return nil
}

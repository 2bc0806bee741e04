// Package repository, veritabanı erişim katmanını barındırır.
//
// Her entity için bir interface + SQLite implementasyonu tanımlanır.
// Service katmanı interface'lere bağımlıdır, SQLite implementasyonlarına değil.
package repository

import (
	"context"

	"github.com/youness/libris/models"
)

// AuthorRepository, yazar veritabanı işlemleri için interface.
type AuthorRepository interface {
	// Create, yeni yazar kaydı oluşturur; ID ve CreatedAt store tarafından doldurulur.
	Create(ctx context.Context, author *models.Author) error

	// GetByID, id'ye göre yazarı bulur. Bulunamazsa pkg.ErrNotFound döner.
	GetByID(ctx context.Context, id string) (*models.Author, error)

	// GetAll, tüm yazarları ekleme sırasıyla döner.
	GetAll(ctx context.Context) ([]models.Author, error)

	// Update, yazarın isim alanlarını günceller. Kayıt yoksa pkg.ErrNotFound döner.
	Update(ctx context.Context, author *models.Author) error

	// Delete, yazar kaydını siler. Kayıt yoksa pkg.ErrNotFound döner.
	// Kitap referans kontrolü burada YAPILMAZ — service katmanının işi.
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"github.com/youness/libris/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	// Create, yeni kullanıcı kaydı oluşturur; ID ve CreatedAt store tarafından
	// doldurulur. Email zaten kayıtlıysa pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, user *models.User) error

	// GetByID, id'ye göre kullanıcıyı bulur. Bulunamazsa pkg.ErrNotFound döner.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail, email'e göre kullanıcıyı bulur. Bulunamazsa pkg.ErrNotFound döner.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePassword, kullanıcının şifre hash'ini günceller.
	UpdatePassword(ctx context.Context, userID, newPasswordHash string) error

	// Count, toplam kullanıcı sayısını döner (ilk kullanıcı = admin bootstrap'ı için).
	Count(ctx context.Context) (int, error)
}

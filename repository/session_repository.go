package repository

import (
	"context"

	"github.com/youness/libris/models"
)

// SessionRepository, refresh token oturumları için interface.
type SessionRepository interface {
	// Create, yeni oturum kaydı oluşturur.
	Create(ctx context.Context, session *models.Session) error

	// GetByRefreshToken, refresh token'a göre oturumu bulur.
	// Bulunamazsa pkg.ErrNotFound döner.
	GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error)

	// DeleteByID, tek bir oturumu siler (logout / token rotation).
	DeleteByID(ctx context.Context, id string) error

	// DeleteByUserID, kullanıcının TÜM oturumlarını siler.
	// Şifre değiştiğinde eldeki refresh token'ları geçersiz kılmak için.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired, süresi dolmuş oturumları temizler.
	// Login sırasında "fırsat temizliği" olarak çağrılır.
	DeleteExpired(ctx context.Context) error
}

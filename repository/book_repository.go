package repository

import (
	"context"

	"github.com/youness/libris/models"
)

// BookRepository, kitap veritabanı işlemleri için interface.
type BookRepository interface {
	// Create, yeni kitap kaydı oluşturur; ID ve CreatedAt store tarafından doldurulur.
	// book.Author nil olabilir — author_id NULL yazılır.
	Create(ctx context.Context, book *models.Book) error

	// GetByID, id'ye göre kitabı (nested yazar bilgisiyle) bulur.
	// Bulunamazsa pkg.ErrNotFound döner.
	GetByID(ctx context.Context, id string) (*models.Book, error)

	// GetPage, kitapları ekleme sırasıyla sayfalı döner.
	// page 1 tabanlıdır; aralık dışı sayfa boş slice döner, hata değil.
	GetPage(ctx context.Context, page, limit int) ([]models.Book, error)

	// Update, title, cover_text, image ve author_id alanlarını günceller.
	// Kayıt yoksa pkg.ErrNotFound döner.
	Update(ctx context.Context, book *models.Book) error

	// Delete, kitap kaydını siler. Kayıt yoksa pkg.ErrNotFound döner.
	Delete(ctx context.Context, id string) error

	// CountByAuthor, verilen yazara bağlı kitap sayısını döner.
	// Yazar silme koruması bu sayıya bakar.
	CountByAuthor(ctx context.Context, authorID string) (int, error)
}

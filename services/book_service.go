package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
	"github.com/youness/libris/repository"
)

// BookService, kitap iş mantığı interface'i.
//
// Görsel parametreleri nil olabilir — o durumda kitap görselsiz oluşturulur
// veya mevcut görsel korunur.
type BookService interface {
	GetPage(ctx context.Context, page, limit int) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, req *models.BookRequest, file multipart.File, header *multipart.FileHeader) (*models.Book, error)
	Update(ctx context.Context, id string, req *models.BookRequest, file multipart.File, header *multipart.FileHeader) (*models.Book, error)
	Delete(ctx context.Context, id string) error
}

type bookService struct {
	bookRepo   repository.BookRepository
	authorRepo repository.AuthorRepository
	images     ImageService
}

func NewBookService(
	bookRepo repository.BookRepository,
	authorRepo repository.AuthorRepository,
	images ImageService,
) BookService {
	return &bookService{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		images:     images,
	}
}

func (s *bookService) GetPage(ctx context.Context, page, limit int) ([]models.Book, error) {
	return s.bookRepo.GetPage(ctx, page, limit)
}

func (s *bookService) GetByID(ctx context.Context, id string) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

// Create, yeni kitap oluşturur.
//
// idAuthor davranışı bilinçli olarak GEVŞEK: boş veya veritabanında olmayan
// bir id gelirse kitap yazarsız (author NULL) oluşturulur, istek
// reddedilMEZ. Update ise katıdır — aşağıya bak.
func (s *bookService) Create(ctx context.Context, req *models.BookRequest, file multipart.File, header *multipart.FileHeader) (*models.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	book := &models.Book{
		Title:     req.Title,
		CoverText: req.CoverText,
	}

	if req.IDAuthor != "" {
		author, err := s.authorRepo.GetByID(ctx, req.IDAuthor)
		if err == nil {
			book.Author = author
		} else if !errors.Is(err, pkg.ErrNotFound) {
			return nil, err
		}
	}

	if file != nil {
		imageURL, err := s.images.Save(file, header)
		if err != nil {
			return nil, err
		}
		book.Image = &imageURL
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if book.Image != nil {
			_ = s.images.Delete(*book.Image)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

// Update, kitabı günceller. Tüm alanlar (title, coverText, idAuthor)
// zorunludur — partial update yoktur. Create'in aksine idAuthor burada
// geçerli bir yazarı göstermek ZORUNDA.
//
// Yeni görsel geldiyse eskisi diskten silinir.
func (s *bookService) Update(ctx context.Context, id string, req *models.BookRequest, file multipart.File, header *multipart.FileHeader) (*models.Book, error) {
	// Önce kayıt yüklenir: olmayan kitap bozuk istekle bile 404 döner, 400 değil.
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if req.IDAuthor == "" {
		return nil, fmt.Errorf("%w: idAuthor is required", pkg.ErrBadRequest)
	}

	author, err := s.authorRepo.GetByID(ctx, req.IDAuthor)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: author not found", pkg.ErrBadRequest)
		}
		return nil, err
	}

	book.Title = req.Title
	book.CoverText = req.CoverText
	book.Author = author

	oldImage := book.Image
	if file != nil {
		imageURL, err := s.images.Save(file, header)
		if err != nil {
			return nil, err
		}
		book.Image = &imageURL
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		if file != nil && book.Image != nil {
			_ = s.images.Delete(*book.Image)
		}
		return nil, err
	}

	// DB güncellendi — eski görsel artık yetim, temizle.
	if file != nil && oldImage != nil {
		_ = s.images.Delete(*oldImage)
	}

	return book, nil
}

// Delete, kitabı ve varsa kapak görselini siler.
func (s *bookService) Delete(ctx context.Context, id string) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	if book.Image != nil {
		_ = s.images.Delete(*book.Image)
	}

	return nil
}

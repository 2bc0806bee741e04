package services

import (
	"context"
	"fmt"

	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
	"github.com/youness/libris/repository"
)

// AuthorService, yazar iş mantığı interface'i.
type AuthorService interface {
	GetAll(ctx context.Context) ([]models.Author, error)
	GetByID(ctx context.Context, id string) (*models.Author, error)
	Create(ctx context.Context, req *models.AuthorRequest) (*models.Author, error)
	Update(ctx context.Context, id string, req *models.AuthorRequest) (*models.Author, error)
	Delete(ctx context.Context, id string) error
}

type authorService struct {
	authorRepo repository.AuthorRepository
	bookRepo   repository.BookRepository
}

func NewAuthorService(
	authorRepo repository.AuthorRepository,
	bookRepo repository.BookRepository,
) AuthorService {
	return &authorService{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
	}
}

func (s *authorService) GetAll(ctx context.Context) ([]models.Author, error) {
	return s.authorRepo.GetAll(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id string) (*models.Author, error) {
	return s.authorRepo.GetByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req *models.AuthorRequest) (*models.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	author := &models.Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return author, nil
}

func (s *authorService) Update(ctx context.Context, id string, req *models.AuthorRequest) (*models.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.FirstName = req.FirstName
	author.LastName = req.LastName

	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// Delete, yazarı siler.
//
// Kitabı olan yazar SİLİNEMEZ — kitaplar yazarsız (NULL author) kalmak
// yerine istek reddedilir. İstemci önce kitapları silmeli veya başka
// yazara taşımalı.
func (s *authorService) Delete(ctx context.Context, id string) error {
	// Yazar var mı? Yoksa 404.
	if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.bookRepo.CountByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete author with associated books", pkg.ErrBadRequest)
	}

	return s.authorRepo.Delete(ctx, id)
}

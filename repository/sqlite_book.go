package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/youness/libris/database"
	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
)

// sqliteBookRepo, BookRepository interface'inin SQLite implementasyonu.
//
// Okuma sorguları authors tablosuna LEFT JOIN yapar — kitabın yazarı NULL
// olabilir (create sırasında geçersiz idAuthor null bağlar).
type sqliteBookRepo struct {
	db database.TxQuerier
}

// NewSQLiteBookRepo, constructor.
func NewSQLiteBookRepo(db database.TxQuerier) BookRepository {
	return &sqliteBookRepo{db: db}
}

func (r *sqliteBookRepo) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (id, title, cover_text, image, author_id)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	var authorID *string
	if book.Author != nil {
		authorID = &book.Author.ID
	}

	err := r.db.QueryRowContext(ctx, query,
		book.Title,
		book.CoverText,
		book.Image,
		authorID,
	).Scan(&book.ID, &book.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// bookSelect, tüm okuma sorgularının ortak SELECT + JOIN kısmı.
const bookSelect = `
	SELECT b.id, b.title, b.cover_text, b.image, b.created_at,
	       a.id, a.first_name, a.last_name, a.created_at
	FROM books b
	LEFT JOIN authors a ON a.id = b.author_id`

// scanBook, bir satırı Book'a okur; yazar kolonları NULL ise Author nil kalır.
func scanBook(scan func(dest ...any) error) (*models.Book, error) {
	book := &models.Book{}
	var authorID, firstName, lastName sql.NullString
	var authorCreatedAt sql.NullTime

	err := scan(
		&book.ID, &book.Title, &book.CoverText, &book.Image, &book.CreatedAt,
		&authorID, &firstName, &lastName, &authorCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		book.Author = &models.Author{
			ID:        authorID.String,
			FirstName: firstName.String,
			LastName:  lastName.String,
			CreatedAt: authorCreatedAt.Time,
		}
	}

	return book, nil
}

func (r *sqliteBookRepo) GetByID(ctx context.Context, id string) (*models.Book, error) {
	row := r.db.QueryRowContext(ctx, bookSelect+` WHERE b.id = ?`, id)

	book, err := scanBook(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return book, nil
}

func (r *sqliteBookRepo) GetPage(ctx context.Context, page, limit int) ([]models.Book, error) {
	// b.rowid = ekleme sırası — stabil sayfalama anahtarı.
	// OFFSET aralık dışındaysa SQLite boş sonuç döner, hata değil.
	query := bookSelect + ` ORDER BY b.rowid LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get book page: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}

func (r *sqliteBookRepo) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books SET title = ?, cover_text = ?, image = ?, author_id = ?
		WHERE id = ?`

	var authorID *string
	if book.Author != nil {
		authorID = &book.Author.ID
	}

	result, err := r.db.ExecContext(ctx, query,
		book.Title, book.CoverText, book.Image, authorID, book.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteBookRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteBookRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE author_id = ?`, authorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books by author: %w", err)
	}
	return count, nil
}

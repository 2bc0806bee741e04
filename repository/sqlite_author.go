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

// sqliteAuthorRepo, AuthorRepository interface'inin SQLite implementasyonu.
type sqliteAuthorRepo struct {
	db database.TxQuerier
}

// NewSQLiteAuthorRepo, constructor.
// TxQuerier kabul eder — normal akışta *sql.DB, transaction içinde *sql.Tx geçilir.
func NewSQLiteAuthorRepo(db database.TxQuerier) AuthorRepository {
	return &sqliteAuthorRepo{db: db}
}

func (r *sqliteAuthorRepo) Create(ctx context.Context, author *models.Author) error {
	query := `
		INSERT INTO authors (id, first_name, last_name)
		VALUES (lower(hex(randomblob(8))), ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		author.FirstName,
		author.LastName,
	).Scan(&author.ID, &author.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}

	return nil
}

func (r *sqliteAuthorRepo) GetByID(ctx context.Context, id string) (*models.Author, error) {
	query := `
		SELECT id, first_name, last_name, created_at
		FROM authors WHERE id = ?`

	author := &models.Author{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&author.ID, &author.FirstName, &author.LastName, &author.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return author, nil
}

func (r *sqliteAuthorRepo) GetAll(ctx context.Context) ([]models.Author, error) {
	// rowid = SQLite'ın örtük ekleme sırası — stabil listeleme anahtarı
	query := `
		SELECT id, first_name, last_name, created_at
		FROM authors ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all authors: %w", err)
	}
	defer rows.Close()

	authors := []models.Author{}
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author rows: %w", err)
	}

	return authors, nil
}

func (r *sqliteAuthorRepo) Update(ctx context.Context, author *models.Author) error {
	query := `UPDATE authors SET first_name = ?, last_name = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, author.FirstName, author.LastName, author.ID)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
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

func (r *sqliteAuthorRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
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

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbazhenov/bookstore/internal/domain"
)

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository создаёт PostgreSQL-реализацию каталога книг.
func NewCatalogRepository(store *Store) domain.CatalogLookup {
	return &catalogRepository{db: store.DB()}
}

func (r *catalogRepository) FindByBookID(ctx context.Context, id int64) (domain.Book, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var book domain.Book
	err := r.db.QueryRowContext(queryCtx, `
		SELECT id, title, author, price_minor, is_public, category_id
		FROM books
		WHERE id = $1
	`, id).Scan(
		&book.ID, &book.Title, &book.Author,
		&book.PriceMinor, &book.IsPublic, &book.CategoryID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Book{}, domain.ErrBookNotFound
		}
		return domain.Book{}, fmt.Errorf("select book: %w", err)
	}

	return book, nil
}

var _ domain.CatalogLookup = (*catalogRepository)(nil)

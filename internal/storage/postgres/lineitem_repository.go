package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbazhenov/bookstore/internal/domain"
)

type lineItemRepository struct {
	db *sql.DB
}

// NewLineItemRepository создаёт PostgreSQL-реализацию LineItemStore.
func NewLineItemRepository(store *Store) domain.LineItemStore {
	return &lineItemRepository{db: store.DB()}
}

func (r *lineItemRepository) Create(ctx context.Context, tx domain.Tx, item domain.LineItem) error {
	stx, err := sqlTx(tx)
	if err != nil {
		return err
	}

	if _, err := stx.ExecContext(ctx, `
		INSERT INTO line_items (order_id, book_id, quantity)
		VALUES ($1,$2,$3)
	`, item.OrderID, item.BookID, item.Quantity); err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}

	return nil
}

func (r *lineItemRepository) FindByOrderID(ctx context.Context, orderID int64) ([]domain.LineItem, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// id растёт в порядке вставки, то есть в порядке позиций корзины.
	rows, err := r.db.QueryContext(queryCtx, `
		SELECT order_id, book_id, quantity
		FROM line_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load line items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.LineItem, 0)
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.OrderID, &item.BookID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line items: %w", err)
	}

	return items, nil
}

var _ domain.LineItemStore = (*lineItemRepository)(nil)

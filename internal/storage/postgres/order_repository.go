package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vbazhenov/bookstore/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderStore.
func NewOrderRepository(store *Store) domain.OrderStore {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(ctx context.Context, tx domain.Tx, order domain.Order) (int64, error) {
	stx, err := sqlTx(tx)
	if err != nil {
		return 0, err
	}

	var id int64
	err = stx.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_id, total_minor, confirmation_number, created_at
		) VALUES ($1,$2,$3,$4)
		RETURNING id
	`,
		order.CustomerID, order.TotalMinor, order.ConfirmationNumber, order.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("insert order: %w: %v", domain.ErrCustomerNotFound, err)
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}

	return id, nil
}

func (r *orderRepository) FindByOrderID(ctx context.Context, id int64) (domain.Order, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(queryCtx, `
		SELECT id, customer_id, total_minor, confirmation_number, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerID, &order.TotalMinor,
		&order.ConfirmationNumber, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	return order, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

var _ domain.OrderStore = (*orderRepository)(nil)

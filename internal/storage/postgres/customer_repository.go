package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbazhenov/bookstore/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerStore.
func NewCustomerRepository(store *Store) domain.CustomerStore {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(ctx context.Context, tx domain.Tx, customer domain.Customer) (int64, error) {
	stx, err := sqlTx(tx)
	if err != nil {
		return 0, err
	}

	var id int64
	err = stx.QueryRowContext(ctx, `
		INSERT INTO customers (
			name, address, phone, email, cc_number, cc_expiry_date
		) VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`,
		customer.Name, customer.Address, customer.Phone,
		customer.Email, customer.CCNumber, customer.CCExpiryDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}

	return id, nil
}

func (r *customerRepository) FindByCustomerID(ctx context.Context, id int64) (domain.Customer, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var customer domain.Customer
	err := r.db.QueryRowContext(queryCtx, `
		SELECT id, name, address, phone, email, cc_number, cc_expiry_date
		FROM customers
		WHERE id = $1
	`, id).Scan(
		&customer.ID, &customer.Name, &customer.Address, &customer.Phone,
		&customer.Email, &customer.CCNumber, &customer.CCExpiryDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}

	return customer, nil
}

var _ domain.CustomerStore = (*customerRepository)(nil)

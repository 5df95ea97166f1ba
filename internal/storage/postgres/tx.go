package postgres

import (
	"database/sql"
	"fmt"

	"github.com/vbazhenov/bookstore/internal/domain"
)

// Tx оборачивает *sql.Tx в доменный интерфейс транзакции.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("rollback tx: %w", err)
	}
	return nil
}

// sqlTx достаёт низкоуровневую транзакцию из доменного интерфейса.
// Репозитории этого пакета работают только с транзакциями своего Store.
func sqlTx(tx domain.Tx) (*sql.Tx, error) {
	pgTx, ok := tx.(*Tx)
	if !ok || pgTx.tx == nil {
		return nil, fmt.Errorf("tx is not a postgres transaction")
	}
	return pgTx.tx, nil
}

var _ domain.Tx = (*Tx)(nil)

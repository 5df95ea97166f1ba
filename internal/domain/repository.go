package domain

import (
	"context"
	"time"
)

// Tx — открытая единица работы. Все записи одного оформления заказа
// выполняются внутри одной Tx и становятся видимыми только после Commit.
type Tx interface {
	Commit() error
	Rollback() error
}

// UnitOfWork открывает транзакционную границу над хранилищем.
type UnitOfWork interface {
	Begin(ctx context.Context) (Tx, error)
}

// CatalogLookup — авторитетный источник данных о книгах.
type CatalogLookup interface {
	// FindByBookID возвращает книгу или ErrBookNotFound, если её нет.
	FindByBookID(ctx context.Context, id int64) (Book, error)
}

// CustomerStore описывает требования к хранилищу покупателей.
type CustomerStore interface {
	// Create вставляет покупателя внутри переданной транзакции и возвращает ID.
	Create(ctx context.Context, tx Tx, customer Customer) (int64, error)
	// FindByCustomerID возвращает покупателя или ErrCustomerNotFound.
	FindByCustomerID(ctx context.Context, id int64) (Customer, error)
}

// OrderStore описывает требования к хранилищу заказов.
type OrderStore interface {
	// Create вставляет заказ внутри переданной транзакции и возвращает ID.
	Create(ctx context.Context, tx Tx, order Order) (int64, error)
	// FindByOrderID возвращает заказ или ErrOrderNotFound.
	FindByOrderID(ctx context.Context, id int64) (Order, error)
}

// LineItemStore описывает требования к хранилищу позиций заказов.
type LineItemStore interface {
	// Create вставляет позицию внутри переданной транзакции.
	Create(ctx context.Context, tx Tx, item LineItem) error
	// FindByOrderID возвращает позиции заказа в порядке их создания.
	FindByOrderID(ctx context.Context, orderID int64) ([]LineItem, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// OutboxRepository — transactional outbox: событие ставится в очередь той же
// транзакцией, что и породившие его записи, и публикуется после commit.
type OutboxRepository interface {
	Enqueue(ctx context.Context, tx Tx, msg OutboxMessage) error
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(msg OutboxMessage) error
}

package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/vbazhenov/bookstore/internal/domain"
)

// ErrTxFinished возвращается при повторном Commit/Rollback одной транзакции.
var ErrTxFinished = errors.New("memory: transaction already finished")

// Store — in-memory хранилище покупателей, заказов и позиций для локальной
// разработки и тестов. Записи буферизуются в транзакции и применяются
// атомарно на Commit, имитируя семантику единицы работы реальной БД.
type Store struct {
	mu             sync.RWMutex
	customers      map[int64]domain.Customer
	orders         map[int64]domain.Order
	lineItems      map[int64][]domain.LineItem
	nextCustomerID int64
	nextOrderID    int64
}

// NewStore возвращает пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		customers: make(map[int64]domain.Customer),
		orders:    make(map[int64]domain.Order),
		lineItems: make(map[int64][]domain.LineItem),
	}
}

// Tx буферизует записи одного оформления заказа. Идентификаторы выдаются
// сразу при Create (как последовательности в Postgres), но данные становятся
// видимыми только после Commit. Rollback просто отбрасывает буфер —
// выданные ID при этом сгорают, как и у настоящих последовательностей.
type Tx struct {
	store *Store

	mu        sync.Mutex
	finished  bool
	customers []domain.Customer
	orders    []domain.Order
	lineItems []domain.LineItem
	outbox    []stagedOutboxMessage
}

type stagedOutboxMessage struct {
	repo *OutboxRepository
	msg  domain.OutboxMessage
}

// Begin открывает новую единицу работы.
func (s *Store) Begin(_ context.Context) (domain.Tx, error) {
	return &Tx{store: s}, nil
}

// Commit атомарно применяет все буферизованные записи.
func (t *Tx) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return ErrTxFinished
	}
	t.finished = true

	t.store.mu.Lock()
	for _, customer := range t.customers {
		t.store.customers[customer.ID] = customer
	}
	for _, order := range t.orders {
		t.store.orders[order.ID] = order
	}
	for _, item := range t.lineItems {
		t.store.lineItems[item.OrderID] = append(t.store.lineItems[item.OrderID], item)
	}
	t.store.mu.Unlock()

	for _, staged := range t.outbox {
		staged.repo.apply(staged.msg)
	}
	return nil
}

// Rollback отбрасывает буферизованные записи.
func (t *Tx) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return ErrTxFinished
	}
	t.finished = true
	t.customers = nil
	t.orders = nil
	t.lineItems = nil
	t.outbox = nil
	return nil
}

// memTx достаёт *Tx из доменного интерфейса.
func memTx(tx domain.Tx) (*Tx, error) {
	memoryTx, ok := tx.(*Tx)
	if !ok {
		return nil, errors.New("memory: unexpected transaction type")
	}
	if memoryTx.finished {
		return nil, ErrTxFinished
	}
	return memoryTx, nil
}

// CustomerStore возвращает представление хранилища для покупателей.
func (s *Store) CustomerStore() domain.CustomerStore { return (*customerStore)(s) }

// OrderStore возвращает представление хранилища для заказов.
func (s *Store) OrderStore() domain.OrderStore { return (*orderStore)(s) }

// LineItemStore возвращает представление хранилища для позиций.
func (s *Store) LineItemStore() domain.LineItemStore { return (*lineItemStore)(s) }

type customerStore Store

// Create выдаёт покупателю новый ID и буферизует запись в транзакции.
func (s *customerStore) Create(_ context.Context, tx domain.Tx, customer domain.Customer) (int64, error) {
	memoryTx, err := memTx(tx)
	if err != nil {
		return 0, err
	}

	store := (*Store)(s)
	store.mu.Lock()
	store.nextCustomerID++
	customer.ID = store.nextCustomerID
	store.mu.Unlock()

	memoryTx.mu.Lock()
	memoryTx.customers = append(memoryTx.customers, customer)
	memoryTx.mu.Unlock()

	return customer.ID, nil
}

// FindByCustomerID возвращает покупателя или ErrCustomerNotFound.
func (s *customerStore) FindByCustomerID(_ context.Context, id int64) (domain.Customer, error) {
	store := (*Store)(s)
	store.mu.RLock()
	defer store.mu.RUnlock()

	customer, ok := store.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

type orderStore Store

// Create выдаёт заказу новый ID и буферизует запись в транзакции.
func (s *orderStore) Create(_ context.Context, tx domain.Tx, order domain.Order) (int64, error) {
	memoryTx, err := memTx(tx)
	if err != nil {
		return 0, err
	}

	store := (*Store)(s)
	store.mu.Lock()
	store.nextOrderID++
	order.ID = store.nextOrderID
	store.mu.Unlock()

	memoryTx.mu.Lock()
	memoryTx.orders = append(memoryTx.orders, order)
	memoryTx.mu.Unlock()

	return order.ID, nil
}

// FindByOrderID возвращает заказ или ErrOrderNotFound.
func (s *orderStore) FindByOrderID(_ context.Context, id int64) (domain.Order, error) {
	store := (*Store)(s)
	store.mu.RLock()
	defer store.mu.RUnlock()

	order, ok := store.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

type lineItemStore Store

// Create буферизует позицию заказа в транзакции.
func (s *lineItemStore) Create(_ context.Context, tx domain.Tx, item domain.LineItem) error {
	memoryTx, err := memTx(tx)
	if err != nil {
		return err
	}

	memoryTx.mu.Lock()
	memoryTx.lineItems = append(memoryTx.lineItems, item)
	memoryTx.mu.Unlock()
	return nil
}

// FindByOrderID возвращает позиции заказа в порядке создания.
func (s *lineItemStore) FindByOrderID(_ context.Context, orderID int64) ([]domain.LineItem, error) {
	store := (*Store)(s)
	store.mu.RLock()
	defer store.mu.RUnlock()

	items := store.lineItems[orderID]
	result := make([]domain.LineItem, len(items))
	copy(result, items)
	return result, nil
}

var (
	_ domain.UnitOfWork    = (*Store)(nil)
	_ domain.CustomerStore = (*customerStore)(nil)
	_ domain.OrderStore    = (*orderStore)(nil)
	_ domain.LineItemStore = (*lineItemStore)(nil)
)

package memory

import (
	"context"
	"sync"

	"github.com/vbazhenov/bookstore/internal/domain"
)

// Catalog — in-memory реализация CatalogLookup для локальной разработки
// и тестов. Каталог read-only с точки зрения оформления заказов;
// Seed используется только при инициализации.
type Catalog struct {
	mu    sync.RWMutex
	books map[int64]domain.Book
}

// NewCatalog возвращает пустой in-memory каталог.
func NewCatalog() *Catalog {
	return &Catalog{books: make(map[int64]domain.Book)}
}

// Seed загружает книги в каталог, перезаписывая совпадающие ID.
func (c *Catalog) Seed(books ...domain.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, book := range books {
		c.books[book.ID] = book
	}
}

// FindByBookID возвращает книгу или ErrBookNotFound.
func (c *Catalog) FindByBookID(_ context.Context, id int64) (domain.Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	book, ok := c.books[id]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return book, nil
}

var _ domain.CatalogLookup = (*Catalog)(nil)

package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vbazhenov/bookstore/internal/domain"
	"github.com/vbazhenov/bookstore/internal/health"
	"github.com/vbazhenov/bookstore/internal/storage/memory"
	"github.com/vbazhenov/bookstore/internal/storage/postgres"
)

// Dependencies — собранный слой хранилища для сервиса заказов.
type Dependencies struct {
	UnitOfWork domain.UnitOfWork
	Customers  domain.CustomerStore
	Orders     domain.OrderStore
	LineItems  domain.LineItemStore
	Catalog    domain.CatalogLookup
	Outbox     domain.OutboxRepository

	healthChecker health.Checker
	closeFn       func() error
}

// HealthChecker возвращает проверку хранилища для health endpoint (может быть nil).
func (d *Dependencies) HealthChecker() health.Checker {
	return d.healthChecker
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}

// initStorage собирает хранилище согласно конфигурации.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	switch cfg.StorageDriver {
	case StoragePostgres:
		return initPostgres(ctx, cfg, logger)
	case StorageMemory:
		return initMemory(logger), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

func initPostgres(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("init postgres storage: %w", err)
	}

	if cfg.PostgresAutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres schema is up to date")
	}

	return &Dependencies{
		UnitOfWork: store,
		Customers:  postgres.NewCustomerRepository(store),
		Orders:     postgres.NewOrderRepository(store),
		LineItems:  postgres.NewLineItemRepository(store),
		Catalog:    postgres.NewCatalogRepository(store),
		Outbox:     postgres.NewOutboxRepository(store),
		healthChecker: health.NewCheckerFunc("postgres", func() error {
			return store.Ping(context.Background())
		}),
		closeFn: store.Close,
	}, nil
}

func initMemory(logger *log.Entry) *Dependencies {
	store := memory.NewStore()
	catalog := memory.NewCatalog()
	catalog.Seed(demoBooks()...)
	logger.Info("using in-memory storage with demo catalog")

	return &Dependencies{
		UnitOfWork: store,
		Customers:  store.CustomerStore(),
		Orders:     store.OrderStore(),
		LineItems:  store.LineItemStore(),
		Catalog:    catalog,
		Outbox:     memory.NewOutboxRepository(),
	}
}

// demoBooks — стартовый каталог для запуска без PostgreSQL.
func demoBooks() []domain.Book {
	return []domain.Book{
		{ID: 1, Title: "The Go Programming Language", Author: "Alan Donovan, Brian Kernighan", PriceMinor: 3999, IsPublic: true, CategoryID: 1},
		{ID: 2, Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", PriceMinor: 4599, IsPublic: true, CategoryID: 1},
		{ID: 3, Title: "A Tale of Two Cities", Author: "Charles Dickens", PriceMinor: 1299, IsPublic: true, CategoryID: 2},
		{ID: 4, Title: "The Adventures of Sherlock Holmes", Author: "Arthur Conan Doyle", PriceMinor: 999, IsPublic: true, CategoryID: 2},
		{ID: 5, Title: "The Art of Computer Programming, Vol. 1", Author: "Donald Knuth", PriceMinor: 7999, IsPublic: false, CategoryID: 1},
	}
}

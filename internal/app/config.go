package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Драйверы хранилища.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	APIAddr     string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	KafkaBrokers []string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
}

// DefaultConfig возвращает настройки по умолчанию: HTTP API на :8080,
// метрики на :9090, in-memory хранилище.
func DefaultConfig() Config {
	return Config{
		APIAddr:            ":8080",
		MetricsAddr:        ":9090",
		StorageDriver:      StorageMemory,
		OutboxPollInterval: 1 * time.Second,
		OutboxBatchSize:    100,
		OutboxMaxAttempts:  3,
	}
}

// ConfigFromEnv собирает конфигурацию из переменных окружения BOOKSTORE_*.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("BOOKSTORE_API_ADDR"); v != "" {
		cfg.APIAddr = v
	}
	if v := os.Getenv("BOOKSTORE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("BOOKSTORE_STORAGE_DRIVER"); v != "" {
		driver := strings.ToLower(strings.TrimSpace(v))
		if driver != StorageMemory && driver != StoragePostgres {
			return Config{}, fmt.Errorf("unsupported storage driver: %s (use memory|postgres)", v)
		}
		cfg.StorageDriver = driver
	}
	if v := os.Getenv("BOOKSTORE_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("BOOKSTORE_POSTGRES_AUTO_MIGRATE"); v != "" {
		autoMigrate, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse BOOKSTORE_POSTGRES_AUTO_MIGRATE: %w", err)
		}
		cfg.PostgresAutoMigrate = autoMigrate
	}
	if v := os.Getenv("BOOKSTORE_KAFKA_BROKERS"); v != "" {
		for _, broker := range strings.Split(v, ",") {
			broker = strings.TrimSpace(broker)
			if broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}
	if v := os.Getenv("BOOKSTORE_OUTBOX_POLL_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse BOOKSTORE_OUTBOX_POLL_INTERVAL: %w", err)
		}
		cfg.OutboxPollInterval = interval
	}
	if v := os.Getenv("BOOKSTORE_OUTBOX_BATCH_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse BOOKSTORE_OUTBOX_BATCH_SIZE: %w", err)
		}
		cfg.OutboxBatchSize = size
	}
	if v := os.Getenv("BOOKSTORE_OUTBOX_MAX_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse BOOKSTORE_OUTBOX_MAX_ATTEMPTS: %w", err)
		}
		cfg.OutboxMaxAttempts = attempts
	}

	if cfg.StorageDriver == StoragePostgres && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("BOOKSTORE_POSTGRES_DSN is required for postgres storage driver")
	}

	return cfg, nil
}

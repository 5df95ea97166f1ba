package app

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIAddr != ":8080" {
		t.Errorf("expected api addr :8080, got %s", cfg.APIAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected metrics addr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Errorf("expected memory storage driver, got %s", cfg.StorageDriver)
	}
	if cfg.OutboxPollInterval != time.Second {
		t.Errorf("expected 1s poll interval, got %v", cfg.OutboxPollInterval)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("BOOKSTORE_API_ADDR", ":8181")
	t.Setenv("BOOKSTORE_METRICS_ADDR", ":9191")
	t.Setenv("BOOKSTORE_STORAGE_DRIVER", "postgres")
	t.Setenv("BOOKSTORE_POSTGRES_DSN", "postgres://localhost:5432/bookstore")
	t.Setenv("BOOKSTORE_POSTGRES_AUTO_MIGRATE", "true")
	t.Setenv("BOOKSTORE_KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("BOOKSTORE_OUTBOX_POLL_INTERVAL", "250ms")
	t.Setenv("BOOKSTORE_OUTBOX_BATCH_SIZE", "50")
	t.Setenv("BOOKSTORE_OUTBOX_MAX_ATTEMPTS", "5")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv failed: %v", err)
	}

	if cfg.APIAddr != ":8181" {
		t.Errorf("unexpected api addr: %s", cfg.APIAddr)
	}
	if cfg.MetricsAddr != ":9191" {
		t.Errorf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Errorf("unexpected storage driver: %s", cfg.StorageDriver)
	}
	if !cfg.PostgresAutoMigrate {
		t.Error("expected auto migrate to be enabled")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "broker1:9092" || cfg.KafkaBrokers[1] != "broker2:9092" {
		t.Errorf("unexpected kafka brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.OutboxPollInterval != 250*time.Millisecond {
		t.Errorf("unexpected poll interval: %v", cfg.OutboxPollInterval)
	}
	if cfg.OutboxBatchSize != 50 {
		t.Errorf("unexpected batch size: %d", cfg.OutboxBatchSize)
	}
	if cfg.OutboxMaxAttempts != 5 {
		t.Errorf("unexpected max attempts: %d", cfg.OutboxMaxAttempts)
	}
}

func TestConfigFromEnv_UnknownDriver(t *testing.T) {
	t.Setenv("BOOKSTORE_STORAGE_DRIVER", "cassandra")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestConfigFromEnv_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("BOOKSTORE_STORAGE_DRIVER", "postgres")
	t.Setenv("BOOKSTORE_POSTGRES_DSN", "")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error when postgres driver has no DSN")
	}
}

func TestConfigFromEnv_BadDuration(t *testing.T) {
	t.Setenv("BOOKSTORE_OUTBOX_POLL_INTERVAL", "not-a-duration")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for invalid poll interval")
	}
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{"BANK_NAME", "HTTP_ADDR", "STORE_DRIVER", "DATABASE_URL", "KAFKA_BROKERS", "KAFKA_TOPIC", "LOG_LEVEL"}

// clearEnv empties every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "bank", cfg.BankName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "transaction_completed", cfg.KafkaTopic)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BANK_NAME", "deniz bank")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/ledger?sslmode=disable")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "deniz bank", cfg.BankName)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:9090\nKAFKA_TOPIC=ledger\n"), 0o600))
	t.Setenv("KAFKA_TOPIC", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "from-env", cfg.KafkaTopic)
}

func TestLoadErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	_, err := Load(missing)
	assert.ErrorContains(t, err, "DATABASE_URL")

	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err = Load(missing)
	assert.ErrorContains(t, err, "STORE_DRIVER")

	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	_, err = Load(missing)
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

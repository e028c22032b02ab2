package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir()) // sin .env en el directorio

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, config.LockLocal, cfg.Lock.Backend)
	assert.Equal(t, 5*time.Second, cfg.Lock.TTL)
	assert.Equal(t, 0.2, cfg.Ledger.CriticalRatio)
	assert.Equal(t, 0.5, cfg.Ledger.WarningRatio)
	assert.Equal(t, 7, cfg.Ledger.CriticalDays)
	assert.Equal(t, 30, cfg.Ledger.WarningDays)
	assert.Equal(t, 0.18, cfg.Ledger.TaxRate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("LOCK_BACKEND", "redis")
	t.Setenv("LOCK_TTL", "2s")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("LEDGER_CRITICAL_RATIO", "0.1")
	t.Setenv("LEDGER_WARNING_DAYS", "14")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorePostgres, cfg.Store.Driver)
	assert.Equal(t, config.LockRedis, cfg.Lock.Backend)
	assert.Equal(t, 2*time.Second, cfg.Lock.TTL)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 0.1, cfg.Ledger.CriticalRatio)
	assert.Equal(t, 14, cfg.Ledger.WarningDays)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_UmbralesInconsistentes(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGER_CRITICAL_RATIO", "0.7")

	_, err := config.Load()
	assert.Error(t, err, "crítico > alerta debe rechazarse")
}

func TestLoad_DriverDesconocido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/ledger?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

package configs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/books")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := LoadEnv(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "https://www.googleapis.com/books/v1", cfg.CatalogBaseURL)
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, "session_token", cfg.AuthCookieName)
	assert.Equal(t, 14, cfg.LoanDefaultDays)
	assert.Equal(t, 14*24*time.Hour, cfg.LoanPeriod())
	assert.Zero(t, cfg.OverdueSweepInterval)
	assert.Empty(t, cfg.GoogleBooksAPIKey)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:books.db")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("CATALOG_BASE_URL", "http://catalog.local/v1/")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("OVERDUE_SWEEP_INTERVAL", "1h")
	t.Setenv("GOOGLE_BOOKS_API_KEY", "k")

	cfg, err := LoadEnv(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "http://catalog.local/v1", cfg.CatalogBaseURL)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, time.Hour, cfg.OverdueSweepInterval)
	assert.Equal(t, "k", cfg.GoogleBooksAPIKey)
}

func TestLoadEnv_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := LoadEnv(noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{DatabaseURL: "x", AuthJWTSecret: "y", DBDriver: "mysql", LoanDefaultDays: 14}
	assert.Error(t, cfg.Validate())
}

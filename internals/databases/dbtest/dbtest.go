// Package dbtest opens migrated in-memory databases for repository tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bookshelf_backend/internals/configs"
	database "bookshelf_backend/internals/databases"
)

// New returns a fresh sqlite database private to t. A single connection keeps
// every statement on the same in-memory file.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := &configs.Config{
		DBDriver:       configs.DriverSQLite,
		DatabaseURL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
		LogLevel:       "error",
	}
	db, err := database.ConnectDB(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.TunePool(db, cfg))
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

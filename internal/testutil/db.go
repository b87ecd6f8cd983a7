// Package testutil holds helpers shared by package tests
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/ff-model-indexer/internal/store"
)

// OpenSQLite opens a migrated, file-backed SQLite database that is removed when the test ends.
// The pool is limited to one connection so concurrent writers queue instead of failing with SQLITE_BUSY.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "indexer.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, store.Migrate(db))
	return db
}

// OpenSQLiteStore opens a SQLite database and wraps it in a Store
func OpenSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	return store.NewPGStore(OpenSQLite(t))
}

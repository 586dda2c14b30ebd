// Package dbtest opens throwaway in-memory databases for package tests.
package dbtest

import (
	"testing"

	"shop_system/internal/db"

	"github.com/glebarez/sqlite" // Pure Go SQLite driver for GORM
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated SQLite database private to the test.
// A single connection keeps the in-memory database alive for the whole test.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := db.Config()
	cfg.Logger = logger.Default.LogMode(logger.Silent)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(gdb))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

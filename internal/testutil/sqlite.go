// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/migration/history"
)

// NewSQLiteDB opens an empty in-memory database with foreign keys enforced.
// The pool is pinned to one connection so every query sees the same memory
// database.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open in-memory database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewMigratedDB is NewSQLiteDB with the full migration history applied.
func NewMigratedDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := NewSQLiteDB(t)
	runner, err := migration.NewRunner(db, zaptest.NewLogger(t))
	require.NoError(t, err)
	_, err = runner.Run(context.Background(), history.All())
	require.NoError(t, err, "apply migration history")
	return db
}

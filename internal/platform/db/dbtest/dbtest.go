// Package dbtest opens throwaway SQLite databases for adapter tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalog "orderup_backend/internal/feature/catalog/domain/entity"
)

// New returns an in-memory database migrated with the food item table plus models.
// The pool is pinned to one connection so every query sees the same database.
func New(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	all := append([]any{&catalog.FoodItem{}}, models...)
	require.NoError(t, db.AutoMigrate(all...), "failed to migrate tables")
	return db
}

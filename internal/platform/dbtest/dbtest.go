// Package dbtest opens migrated embedded databases for adapter tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/platform/migrations"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

// Open returns a private in-memory database with the full schema applied.
// It is closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := postgres.OpenSQLite("", postgres.Options{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

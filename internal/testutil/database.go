// Package testutil provides test helpers for setting up in-memory
// databases, creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"moneta/internal/database"
	"moneta/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.Account{},
	&models.Category{},
	&models.Payee{},
	&models.Transaction{},
}

// SetupTestDB creates an in-memory SQLite store with all models migrated.
func SetupTestDB(t *testing.T) *database.Manager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database.NewFromDB(db)
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, store *database.Manager) {
	t.Helper()

	if err := store.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

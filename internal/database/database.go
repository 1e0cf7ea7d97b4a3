// Package database owns the embedded SQLite store. The store follows
// a single-writer model: every mutating operation runs inside one
// SQL transaction acquired through Manager.Write, which serializes
// writers behind a mutex rather than relying on incidental
// single-threadedness in the caller.
package database

import (
	"fmt"
	"sync"

	"moneta/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager handles database operations
type Manager struct {
	db  *gorm.DB
	mu  sync.Mutex
	cfg *Config
}

// NewManager opens (or creates) the SQLite database file and returns
// a manager around it.
func NewManager(config *Config) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	// One connection: SQLite allows a single writer, and the core's
	// contract is single-reader-at-a-time as well.
	sqlDB.SetMaxOpenConns(1)

	return &Manager{db: db, cfg: config}, nil
}

// NewFromDB wraps an already-open GORM handle. Used by tests that
// open in-memory databases themselves.
func NewFromDB(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// RunMigrations applies pending SQL migrations from the migrations directory.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New("file://"+m.cfg.MigrationsDir, m.cfg.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance for reads. Reads
// see only committed state; they never observe a half-applied write.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Write runs fn inside a single SQL transaction, holding the writer
// lock for its duration. If fn returns an error the transaction is
// rolled back and no partial state is visible to any reader.
func (m *Manager) Write(fn func(tx *gorm.DB) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.db.Transaction(fn)
}

// Close closes the underlying database connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}
	return sqlDB.Close()
}

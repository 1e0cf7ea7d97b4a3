package database

import "fmt"

// Config holds database configuration
type Config struct {
	// Path to the SQLite database file
	Path string

	// Directory holding SQL migrations
	MigrationsDir string
}

// DSN returns the SQLite connection string with foreign keys enabled.
func (c *Config) DSN() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on", c.Path)
}

// MigrateURL returns the golang-migrate database URL for the store.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("sqlite3://%s", c.Path)
}

package main

import (
	"fmt"

	"moneta/internal/config"
	"moneta/internal/database"
	"moneta/internal/logger"
	"moneta/internal/services"
)

// Moneta is an embedded personal-finance ledger. This entry point
// opens the store, brings the schema up to date and reports its
// contents; the surrounding application drives the services from here.
func main() {
	cfg := config.Get()
	logger.Init(cfg.Env)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	dbConfig := &database.Config{
		Path:          cfg.DBPath,
		MigrationsDir: cfg.MigrationsDir,
	}

	store, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnf("store close error: %v", err)
		}
	}()

	if err := store.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	accountService := services.NewAccountService(store)
	accounts, err := accountService.GetAllAccounts()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	log.Infof("Ledger store ready at %s (%d accounts)", dbConfig.Path, len(accounts))
	return nil
}

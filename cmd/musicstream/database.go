package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"musicstream/internal/config"
	"musicstream/internal/database"
	"musicstream/internal/repository"
)

// openStore builds the repository selected by cfg.Store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (repository.Repository, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Info().Msg("using in-memory store")
		return repository.NewInMemoryRepository(), func() {}, nil
	}

	driver, dsn := cfg.DriverAndDSN()
	db, dialect, err := database.Open(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := database.MigrateUp(db, dialect); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info().Str("dialect", dialect.String()).Msg("schema up to date")
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}
	return repository.NewSQLRepository(db, dialect), closeDB, nil
}

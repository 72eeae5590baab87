package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"musicstream/internal/config"
	"musicstream/internal/database"
	"musicstream/internal/logging"
)

func main() {
	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		log.Fatal().Msg("usage: migrate [up|down]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	}))

	if cfg.Store == config.StoreMemory {
		log.Fatal().Msg("STORE=memory has no schema to migrate")
	}

	driver, dsn := cfg.DriverAndDSN()
	db, dialect, err := database.Open(context.Background(), driver, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	if os.Args[1] == "up" {
		if err := database.MigrateUp(db, dialect); err != nil {
			log.Fatal().Err(err).Msg("apply migrations")
		}
		log.Info().Str("dialect", dialect.String()).Msg("migrations applied")
		return
	}

	if err := database.MigrateDown(db, dialect); err != nil {
		log.Fatal().Err(err).Msg("roll back migrations")
	}
	log.Info().Str("dialect", dialect.String()).Msg("migrations rolled back")
}

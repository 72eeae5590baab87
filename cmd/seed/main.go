package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"musicstream/internal/app/playlists"
	"musicstream/internal/app/songs"
	"musicstream/internal/app/users"
	"musicstream/internal/config"
	"musicstream/internal/database"
	"musicstream/internal/logging"
	"musicstream/internal/repository"
	"musicstream/internal/seed"
)

func main() {
	app := &cli.Command{
		Name:  "seed",
		Usage: "Fill a SQL-backed catalogue with generated users, songs and playlists",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "users", Aliases: []string{"u"}, Usage: "Number of users to create", Value: 50},
			&cli.IntFlag{Name: "songs", Aliases: []string{"s"}, Usage: "Number of songs to create", Value: 500},
			&cli.IntFlag{Name: "playlists", Aliases: []string{"p"}, Usage: "Number of playlists to create", Value: 100},
			&cli.Uint64Flag{Name: "seed", Usage: "Random seed; the same seed yields the same catalogue", Value: 1},
			&cli.StringFlag{Name: "store", Usage: "Backend to fill (postgres or sqlite); defaults to STORE"},
			&cli.BoolFlag{Name: "migrate", Usage: "Apply migrations before seeding", Value: true},
			&cli.IntFlag{Name: "progress", Usage: "Log progress every N entities (0 disables)", Value: 100},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if store := cmd.String("store"); store != "" {
		cfg.Store = store
	}
	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	}))

	if cfg.Store != config.StorePostgres && cfg.Store != config.StoreSQLite {
		return fmt.Errorf("seed needs a persistent store, got %q", cfg.Store)
	}

	driver, dsn := cfg.DriverAndDSN()
	db, dialect, err := database.Open(ctx, driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Bool("migrate") {
		if err := database.MigrateUp(db, dialect); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	repo := repository.NewSQLRepository(db, dialect)
	gen := seed.New(users.New(repo), songs.New(repo), playlists.New(repo))

	stats, err := gen.Run(ctx, seed.Options{
		Users:         cmd.Int("users"),
		Songs:         cmd.Int("songs"),
		Playlists:     cmd.Int("playlists"),
		Seed:          cmd.Uint64("seed"),
		ProgressEvery: cmd.Int("progress"),
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("users", stats.Users).
		Int("songs", stats.Songs).
		Int("playlists", stats.Playlists).
		Int("playlist_tracks", stats.PlaylistTracks).
		Str("dialect", dialect.String()).
		Msg("seed complete")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"musicstream/internal/models"
	"musicstream/internal/repository"
)

const demoUserID = "demo-user"

var demoSongs = []models.Song{
	{ID: "demo-song-1", Name: "Blue in Green", Artist: "Miles Davis"},
	{ID: "demo-song-2", Name: "Naima", Artist: "John Coltrane"},
	{ID: "demo-song-3", Name: "Peace Piece", Artist: "Bill Evans"},
}

// bootstrapDemoData inserts a demo user with a small playlist. Rows that already exist are kept.
func bootstrapDemoData(ctx context.Context, svc services) error {
	if _, err := svc.users.Create(ctx, models.User{ID: demoUserID, Name: "Demo Listener", Age: 30}); ignoreExisting(err) != nil {
		return fmt.Errorf("bootstrap demo user: %w", err)
	}

	ids := make([]string, 0, len(demoSongs))
	for _, song := range demoSongs {
		if _, err := svc.songs.Create(ctx, song); ignoreExisting(err) != nil {
			return fmt.Errorf("bootstrap demo song %s: %w", song.ID, err)
		}
		ids = append(ids, song.ID)
	}

	owned, err := svc.users.Playlists(ctx, demoUserID)
	if err != nil {
		return fmt.Errorf("bootstrap demo playlist: %w", err)
	}
	if len(owned) > 0 {
		return nil
	}

	playlist, err := svc.playlists.Create(ctx, models.Playlist{Name: "Late Night Jazz", OwnerID: demoUserID, SongIDs: ids})
	if err != nil {
		return fmt.Errorf("bootstrap demo playlist: %w", err)
	}
	log.Info().Str("playlist_id", playlist.ID).Int("songs", len(playlist.SongIDs)).Msg("demo data ready")
	return nil
}

func ignoreExisting(err error) error {
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil
	}
	return err
}

package songs

import (
	"context"
	"fmt"
	"strings"

	"musicstream/internal/models"
)

// Store exposes the song persistence the service relies on.
type Store interface {
	CreateSong(ctx context.Context, song models.Song) (models.Song, error)
	GetSong(ctx context.Context, id string) (models.Song, error)
	ListSongs(ctx context.Context) ([]models.Song, error)
	UpdateSong(ctx context.Context, id string, patch models.SongPatch) (models.Song, error)
	DeleteSong(ctx context.Context, id string) (bool, error)
	ListPlaylistsBySong(ctx context.Context, songID string) ([]models.Playlist, error)
}

// Service exposes song-centric operations.
type Service interface {
	Create(ctx context.Context, song models.Song) (models.Song, error)
	Get(ctx context.Context, id string) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Update(ctx context.Context, id string, patch models.SongPatch) (models.Song, error)
	Delete(ctx context.Context, id string) (bool, error)
	Playlists(ctx context.Context, id string) ([]models.Playlist, error)
}

type service struct {
	store Store
}

// New constructs a song Service backed by the provided store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, song models.Song) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}

	song.ID = strings.TrimSpace(song.ID)
	song.Name = strings.TrimSpace(song.Name)
	song.Artist = strings.TrimSpace(song.Artist)
	if song.Name == "" || song.Artist == "" {
		return models.Song{}, fmt.Errorf("%w: name and artist are required", models.ErrInvalid)
	}
	return s.store.CreateSong(ctx, song)
}

func (s *service) Get(ctx context.Context, id string) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	return s.store.GetSong(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx)
}

func (s *service) Update(ctx context.Context, id string, patch models.SongPatch) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}

	var err error
	if patch.Name, err = trimmed(patch.Name, "name"); err != nil {
		return models.Song{}, err
	}
	if patch.Artist, err = trimmed(patch.Artist, "artist"); err != nil {
		return models.Song{}, err
	}
	return s.store.UpdateSong(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.DeleteSong(ctx, id)
}

func (s *service) Playlists(ctx context.Context, id string) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylistsBySong(ctx, id)
}

func trimmed(value *string, field string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil, fmt.Errorf("%w: %s must not be blank", models.ErrInvalid, field)
	}
	return &v, nil
}

package playlists

import (
	"context"
	"fmt"
	"strings"

	"musicstream/internal/models"
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, playlist models.Playlist) (models.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (models.Playlist, error)
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id string, patch models.PlaylistPatch) (models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) (bool, error)
	ListSongsInPlaylist(ctx context.Context, playlistID string) ([]models.Song, error)
	AddSongToPlaylist(ctx context.Context, playlistID, songID string) (models.Playlist, error)
	RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) (models.Playlist, error)
}

// Service coordinates playlist-related operations.
type Service interface {
	Create(ctx context.Context, playlist models.Playlist) (models.Playlist, error)
	Get(ctx context.Context, id string) (models.Playlist, error)
	List(ctx context.Context) ([]models.Playlist, error)
	Update(ctx context.Context, id string, patch models.PlaylistPatch) (models.Playlist, error)
	Delete(ctx context.Context, id string) (bool, error)
	Songs(ctx context.Context, id string) ([]models.Song, error)
	AddSong(ctx context.Context, playlistID, songID string) (models.Playlist, error)
	RemoveSong(ctx context.Context, playlistID, songID string) (models.Playlist, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, playlist models.Playlist) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}

	playlist.ID = strings.TrimSpace(playlist.ID)
	playlist.Name = strings.TrimSpace(playlist.Name)
	playlist.OwnerID = strings.TrimSpace(playlist.OwnerID)
	if playlist.Name == "" {
		return models.Playlist{}, fmt.Errorf("%w: name is required", models.ErrInvalid)
	}
	if playlist.OwnerID == "" {
		return models.Playlist{}, fmt.Errorf("%w: ownerId is required", models.ErrInvalid)
	}
	for _, songID := range playlist.SongIDs {
		if strings.TrimSpace(songID) == "" {
			return models.Playlist{}, fmt.Errorf("%w: songIds must not contain blank ids", models.ErrInvalid)
		}
	}
	playlist.SongIDs = models.DedupeIDs(playlist.SongIDs)
	return s.store.CreatePlaylist(ctx, playlist)
}

func (s *service) Get(ctx context.Context, id string) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	return s.store.GetPlaylist(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx)
}

func (s *service) Update(ctx context.Context, id string, patch models.PlaylistPatch) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Playlist{}, fmt.Errorf("%w: name must not be blank", models.ErrInvalid)
		}
		patch.Name = &name
	}
	if patch.OwnerID != nil {
		owner := strings.TrimSpace(*patch.OwnerID)
		if owner == "" {
			return models.Playlist{}, fmt.Errorf("%w: ownerId must not be blank", models.ErrInvalid)
		}
		patch.OwnerID = &owner
	}
	return s.store.UpdatePlaylist(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.DeletePlaylist(ctx, id)
}

func (s *service) Songs(ctx context.Context, id string) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongsInPlaylist(ctx, id)
}

func (s *service) AddSong(ctx context.Context, playlistID, songID string) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	if err := requireIDs(playlistID, songID); err != nil {
		return models.Playlist{}, err
	}
	return s.store.AddSongToPlaylist(ctx, playlistID, songID)
}

func (s *service) RemoveSong(ctx context.Context, playlistID, songID string) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	if err := requireIDs(playlistID, songID); err != nil {
		return models.Playlist{}, err
	}
	return s.store.RemoveSongFromPlaylist(ctx, playlistID, songID)
}

func requireIDs(playlistID, songID string) error {
	if strings.TrimSpace(playlistID) == "" || strings.TrimSpace(songID) == "" {
		return fmt.Errorf("%w: playlist id and song id are required", models.ErrInvalid)
	}
	return nil
}

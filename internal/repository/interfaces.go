package repository

import (
	"context"

	"musicstream/internal/models"
)

// Repository owns the user, song and playlist collections and keeps the references
// between them consistent. Every transport adapter goes through one shared instance.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)

	CreateSong(ctx context.Context, song models.Song) (models.Song, error)
	GetSong(ctx context.Context, id string) (models.Song, error)
	ListSongs(ctx context.Context) ([]models.Song, error)
	UpdateSong(ctx context.Context, id string, patch models.SongPatch) (models.Song, error)
	DeleteSong(ctx context.Context, id string) (bool, error)

	CreatePlaylist(ctx context.Context, playlist models.Playlist) (models.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (models.Playlist, error)
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id string, patch models.PlaylistPatch) (models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) (bool, error)

	ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error)
	ListPlaylistsBySong(ctx context.Context, songID string) ([]models.Playlist, error)
	ListSongsInPlaylist(ctx context.Context, playlistID string) ([]models.Song, error)
	AddSongToPlaylist(ctx context.Context, playlistID, songID string) (models.Playlist, error)
	RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) (models.Playlist, error)
}

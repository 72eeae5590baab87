package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"musicstream/internal/models"
)

// table is an insertion-ordered collection keyed by id.
type table[T any] struct {
	order []string
	rows  map[string]T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) insert(id string, row T) {
	if !t.has(id) {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) put(id string, row T) {
	t.rows[id] = row
}

func (t *table[T]) remove(id string) bool {
	if !t.has(id) {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(existing string) bool { return existing == id })
	return true
}

func (t *table[T]) each(fn func(T)) {
	for _, id := range t.order {
		fn(t.rows[id])
	}
}

// InMemoryRepository keeps every collection in process memory.
type InMemoryRepository struct {
	mu        sync.RWMutex
	users     table[models.User]
	songs     table[models.Song]
	playlists table[models.Playlist]
}

// NewInMemoryRepository returns an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:     newTable[models.User](),
		songs:     newTable[models.Song](),
		playlists: newTable[models.Playlist](),
	}
}

// CreateUser stores user, generating an id when none is supplied.
func (r *InMemoryRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if r.users.has(user.ID) {
		return models.User{}, ErrAlreadyExists
	}
	r.users.insert(user.ID, user)
	return user, nil
}

// GetUser returns the user with id.
func (r *InMemoryRepository) GetUser(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users.get(id)
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// ListUsers returns every user in insertion order.
func (r *InMemoryRepository) ListUsers(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.User, 0, len(r.users.order))
	r.users.each(func(u models.User) { result = append(result, u) })
	return result, nil
}

// UpdateUser applies the supplied fields of patch.
func (r *InMemoryRepository) UpdateUser(_ context.Context, id string, patch models.UserPatch) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users.get(id)
	if !ok {
		return models.User{}, ErrNotFound
	}
	user = patch.Apply(user)
	r.users.put(id, user)
	return user, nil
}

// DeleteUser removes the user and every playlist it owns.
func (r *InMemoryRepository) DeleteUser(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.users.has(id) {
		return false, nil
	}

	var owned []string
	r.playlists.each(func(p models.Playlist) {
		if p.OwnerID == id {
			owned = append(owned, p.ID)
		}
	})

	for _, playlistID := range owned {
		r.playlists.remove(playlistID)
	}
	r.users.remove(id)
	return true, nil
}

// CreateSong stores song, generating an id when none is supplied.
func (r *InMemoryRepository) CreateSong(_ context.Context, song models.Song) (models.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if song.ID == "" {
		song.ID = uuid.NewString()
	}
	if r.songs.has(song.ID) {
		return models.Song{}, ErrAlreadyExists
	}
	r.songs.insert(song.ID, song)
	return song, nil
}

// GetSong returns the song with id.
func (r *InMemoryRepository) GetSong(_ context.Context, id string) (models.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	song, ok := r.songs.get(id)
	if !ok {
		return models.Song{}, ErrNotFound
	}
	return song, nil
}

// ListSongs returns every song in insertion order.
func (r *InMemoryRepository) ListSongs(_ context.Context) ([]models.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Song, 0, len(r.songs.order))
	r.songs.each(func(s models.Song) { result = append(result, s) })
	return result, nil
}

// UpdateSong applies the supplied fields of patch.
func (r *InMemoryRepository) UpdateSong(_ context.Context, id string, patch models.SongPatch) (models.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	song, ok := r.songs.get(id)
	if !ok {
		return models.Song{}, ErrNotFound
	}
	song = patch.Apply(song)
	r.songs.put(id, song)
	return song, nil
}

// DeleteSong removes the song and strips it from every playlist that lists it.
func (r *InMemoryRepository) DeleteSong(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.songs.has(id) {
		return false, nil
	}

	var affected []models.Playlist
	r.playlists.each(func(p models.Playlist) {
		if p.HasSong(id) {
			affected = append(affected, p)
		}
	})

	for _, p := range affected {
		p.SongIDs = slices.DeleteFunc(slices.Clone(p.SongIDs), func(songID string) bool { return songID == id })
		r.playlists.put(p.ID, p)
	}
	r.songs.remove(id)
	return true, nil
}

// CreatePlaylist stores playlist after checking that its owner and every initial song exist.
func (r *InMemoryRepository) CreatePlaylist(_ context.Context, playlist models.Playlist) (models.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.users.has(playlist.OwnerID) {
		return models.Playlist{}, missingUser(playlist.OwnerID)
	}
	songIDs := models.DedupeIDs(playlist.SongIDs)
	for _, songID := range songIDs {
		if !r.songs.has(songID) {
			return models.Playlist{}, missingSong(songID)
		}
	}

	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}
	if r.playlists.has(playlist.ID) {
		return models.Playlist{}, ErrAlreadyExists
	}
	playlist.SongIDs = songIDs

	r.playlists.insert(playlist.ID, playlist.Clone())
	return playlist.Clone(), nil
}

// GetPlaylist returns the playlist with id.
func (r *InMemoryRepository) GetPlaylist(_ context.Context, id string) (models.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	playlist, ok := r.playlists.get(id)
	if !ok {
		return models.Playlist{}, ErrNotFound
	}
	return playlist.Clone(), nil
}

// ListPlaylists returns every playlist in insertion order.
func (r *InMemoryRepository) ListPlaylists(_ context.Context) ([]models.Playlist, error) {
	return r.filterPlaylists(func(models.Playlist) bool { return true }), nil
}

// UpdatePlaylist applies the supplied fields of patch. A new owner must exist.
func (r *InMemoryRepository) UpdatePlaylist(_ context.Context, id string, patch models.PlaylistPatch) (models.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, ok := r.playlists.get(id)
	if !ok {
		return models.Playlist{}, ErrNotFound
	}
	if patch.OwnerID != nil && !r.users.has(*patch.OwnerID) {
		return models.Playlist{}, missingUser(*patch.OwnerID)
	}

	playlist = patch.Apply(playlist)
	r.playlists.put(id, playlist)
	return playlist.Clone(), nil
}

// DeletePlaylist removes the playlist. Users and songs are untouched.
func (r *InMemoryRepository) DeletePlaylist(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.playlists.remove(id), nil
}

// ListPlaylistsByUser returns the playlists owned by userID.
func (r *InMemoryRepository) ListPlaylistsByUser(_ context.Context, userID string) ([]models.Playlist, error) {
	return r.filterPlaylists(func(p models.Playlist) bool { return p.OwnerID == userID }), nil
}

// ListPlaylistsBySong returns the playlists that contain songID.
func (r *InMemoryRepository) ListPlaylistsBySong(_ context.Context, songID string) ([]models.Playlist, error) {
	return r.filterPlaylists(func(p models.Playlist) bool { return p.HasSong(songID) }), nil
}

// ListSongsInPlaylist resolves the playlist's song ids in playlist order.
func (r *InMemoryRepository) ListSongsInPlaylist(_ context.Context, playlistID string) ([]models.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Song, 0)
	playlist, ok := r.playlists.get(playlistID)
	if !ok {
		return result, nil
	}
	for _, songID := range playlist.SongIDs {
		if song, ok := r.songs.get(songID); ok {
			result = append(result, song)
		}
	}
	return result, nil
}

// AddSongToPlaylist appends songID unless it is already a member.
func (r *InMemoryRepository) AddSongToPlaylist(_ context.Context, playlistID, songID string) (models.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, ok := r.playlists.get(playlistID)
	if !ok {
		return models.Playlist{}, ErrNotFound
	}
	if !r.songs.has(songID) {
		return models.Playlist{}, missingSong(songID)
	}
	if playlist.HasSong(songID) {
		return playlist.Clone(), nil
	}

	playlist = playlist.Clone()
	playlist.SongIDs = append(playlist.SongIDs, songID)
	r.playlists.put(playlistID, playlist)
	return playlist.Clone(), nil
}

// RemoveSongFromPlaylist drops songID from the playlist. A non-member is a no-op.
func (r *InMemoryRepository) RemoveSongFromPlaylist(_ context.Context, playlistID, songID string) (models.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, ok := r.playlists.get(playlistID)
	if !ok {
		return models.Playlist{}, ErrNotFound
	}
	if !playlist.HasSong(songID) {
		return playlist.Clone(), nil
	}

	playlist = playlist.Clone()
	playlist.SongIDs = slices.DeleteFunc(playlist.SongIDs, func(id string) bool { return id == songID })
	r.playlists.put(playlistID, playlist)
	return playlist.Clone(), nil
}

func (r *InMemoryRepository) filterPlaylists(keep func(models.Playlist) bool) []models.Playlist {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Playlist, 0)
	r.playlists.each(func(p models.Playlist) {
		if keep(p) {
			result = append(result, p.Clone())
		}
	})
	return result
}

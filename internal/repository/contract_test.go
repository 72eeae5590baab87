package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musicstream/internal/database"
	"musicstream/internal/models"
)

// backends returns a fresh instance of every Repository implementation.
func backends(t *testing.T) map[string]Repository {
	t.Helper()

	db, dialect, err := database.Open(context.Background(), "sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.MigrateUp(db, dialect))

	return map[string]Repository{
		"memory": NewInMemoryRepository(),
		"sqlite": NewSQLRepository(db, dialect),
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, repo Repository)) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, repo)
		})
	}
}

func TestUserLifecycle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		ana, err := repo.CreateUser(ctx, models.User{Name: "Ana", Age: 30})
		require.NoError(t, err)
		assert.NotEmpty(t, ana.ID)

		bob, err := repo.CreateUser(ctx, models.User{ID: "bob", Name: "Bob", Age: 41})
		require.NoError(t, err)
		assert.Equal(t, "bob", bob.ID)

		_, err = repo.CreateUser(ctx, models.User{ID: "bob", Name: "Other", Age: 1})
		assert.ErrorIs(t, err, ErrAlreadyExists)

		got, err := repo.GetUser(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, ana, got)

		users, err := repo.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.User{ana, bob}, users)

		updated, err := repo.UpdateUser(ctx, ana.ID, models.UserPatch{Age: models.Ptr(31)})
		require.NoError(t, err)
		assert.Equal(t, models.User{ID: ana.ID, Name: "Ana", Age: 31}, updated)

		_, err = repo.UpdateUser(ctx, "ghost", models.UserPatch{Name: models.Ptr("x")})
		assert.ErrorIs(t, err, ErrNotFound)

		deleted, err := repo.DeleteUser(ctx, ana.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.DeleteUser(ctx, ana.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.GetUser(ctx, ana.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSongLifecycle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		song, err := repo.CreateSong(ctx, models.Song{Name: "Song A", Artist: "Artist X"})
		require.NoError(t, err)
		assert.NotEmpty(t, song.ID)

		updated, err := repo.UpdateSong(ctx, song.ID, models.SongPatch{Name: models.Ptr("Song B")})
		require.NoError(t, err)
		assert.Equal(t, "Song B", updated.Name)
		assert.Equal(t, "Artist X", updated.Artist)

		songs, err := repo.ListSongs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Song{updated}, songs)

		_, err = repo.GetSong(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)

		deleted, err := repo.DeleteSong(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestCreatePlaylistChecksReferences(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		_, err := repo.CreatePlaylist(ctx, models.Playlist{Name: "Mix", OwnerID: "nobody"})
		require.ErrorIs(t, err, ErrReference)
		var refErr *ReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "user", refErr.Entity)
		assert.Equal(t, "nobody", refErr.ID)

		owner, err := repo.CreateUser(ctx, models.User{Name: "Ana", Age: 30})
		require.NoError(t, err)
		s1, err := repo.CreateSong(ctx, models.Song{Name: "One", Artist: "X"})
		require.NoError(t, err)
		s2, err := repo.CreateSong(ctx, models.Song{Name: "Two", Artist: "Y"})
		require.NoError(t, err)

		_, err = repo.CreatePlaylist(ctx, models.Playlist{Name: "Mix", OwnerID: owner.ID, SongIDs: []string{s1.ID, "nope"}})
		require.ErrorIs(t, err, ErrReference)
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "song", refErr.Entity)

		playlists, err := repo.ListPlaylists(ctx)
		require.NoError(t, err)
		assert.Empty(t, playlists, "a rejected create must not leave a playlist behind")

		created, err := repo.CreatePlaylist(ctx, models.Playlist{
			Name:    "Mix",
			OwnerID: owner.ID,
			SongIDs: []string{s2.ID, s1.ID, s2.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{s2.ID, s1.ID}, created.SongIDs)

		got, err := repo.GetPlaylist(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		_, err = repo.CreatePlaylist(ctx, models.Playlist{ID: created.ID, Name: "Again", OwnerID: owner.ID})
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestUpdatePlaylist(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		ana, err := repo.CreateUser(ctx, models.User{Name: "Ana", Age: 30})
		require.NoError(t, err)
		bob, err := repo.CreateUser(ctx, models.User{Name: "Bob", Age: 25})
		require.NoError(t, err)
		playlist, err := repo.CreatePlaylist(ctx, models.Playlist{Name: "Mix", OwnerID: ana.ID})
		require.NoError(t, err)

		_, err = repo.UpdatePlaylist(ctx, playlist.ID, models.PlaylistPatch{OwnerID: models.Ptr("ghost")})
		assert.ErrorIs(t, err, ErrReference)

		unchanged, err := repo.GetPlaylist(ctx, playlist.ID)
		require.NoError(t, err)
		assert.Equal(t, ana.ID, unchanged.OwnerID)

		updated, err := repo.UpdatePlaylist(ctx, playlist.ID, models.PlaylistPatch{
			Name:    models.Ptr("Road trip"),
			OwnerID: models.Ptr(bob.ID),
		})
		require.NoError(t, err)
		assert.Equal(t, "Road trip", updated.Name)
		assert.Equal(t, bob.ID, updated.OwnerID)

		_, err = repo.UpdatePlaylist(ctx, "missing", models.PlaylistPatch{Name: models.Ptr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPlaylistMembership(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		owner, err := repo.CreateUser(ctx, models.User{Name: "Ana", Age: 30})
		require.NoError(t, err)
		s1, err := repo.CreateSong(ctx, models.Song{Name: "One", Artist: "X"})
		require.NoError(t, err)
		s2, err := repo.CreateSong(ctx, models.Song{Name: "Two", Artist: "Y"})
		require.NoError(t, err)
		playlist, err := repo.CreatePlaylist(ctx, models.Playlist{Name: "Mix", OwnerID: owner.ID})
		require.NoError(t, err)

		_, err = repo.AddSongToPlaylist(ctx, "missing", s1.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = repo.AddSongToPlaylist(ctx, "missing", "also-missing")
		assert.ErrorIs(t, err, ErrNotFound, "playlist is checked before song")
		_, err = repo.AddSongToPlaylist(ctx, playlist.ID, "missing")
		assert.ErrorIs(t, err, ErrReference)

		updated, err := repo.AddSongToPlaylist(ctx, playlist.ID, s2.ID)
		require.NoError(t, err)
		updated, err = repo.AddSongToPlaylist(ctx, playlist.ID, s1.ID)
		require.NoError(t, err)
		updated, err = repo.AddSongToPlaylist(ctx, playlist.ID, s2.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{s2.ID, s1.ID}, updated.SongIDs)

		songs, err := repo.ListSongsInPlaylist(ctx, playlist.ID)
		require.NoError(t, err)
		assert.Equal(t, []models.Song{s2, s1}, songs)

		bySong, err := repo.ListPlaylistsBySong(ctx, s1.ID)
		require.NoError(t, err)
		require.Len(t, bySong, 1)
		assert.Equal(t, playlist.ID, bySong[0].ID)

		updated, err = repo.RemoveSongFromPlaylist(ctx, playlist.ID, "not-a-member")
		require.NoError(t, err)
		assert.Equal(t, []string{s2.ID, s1.ID}, updated.SongIDs)

		updated, err = repo.RemoveSongFromPlaylist(ctx, playlist.ID, s2.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{s1.ID}, updated.SongIDs)

		_, err = repo.RemoveSongFromPlaylist(ctx, "missing", s1.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		ana, err := repo.CreateUser(ctx, models.User{Name: "Ana", Age: 30})
		require.NoError(t, err)
		bob, err := repo.CreateUser(ctx, models.User{Name: "Bob", Age: 25})
		require.NoError(t, err)
		s1, err := repo.CreateSong(ctx, models.Song{Name: "One", Artist: "X"})
		require.NoError(t, err)
		s2, err := repo.CreateSong(ctx, models.Song{Name: "Two", Artist: "Y"})
		require.NoError(t, err)

		anaList, err := repo.CreatePlaylist(ctx, models.Playlist{Name: "A", OwnerID: ana.ID, SongIDs: []string{s1.ID, s2.ID}})
		require.NoError(t, err)
		bobList, err := repo.CreatePlaylist(ctx, models.Playlist{Name: "B", OwnerID: bob.ID, SongIDs: []string{s1.ID}})
		require.NoError(t, err)

		deleted, err := repo.DeleteSong(ctx, s1.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		got, err := repo.GetPlaylist(ctx, anaList.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{s2.ID}, got.SongIDs)
		got, err = repo.GetPlaylist(ctx, bobList.ID)
		require.NoError(t, err)
		assert.Empty(t, got.SongIDs)

		inPlaylist, err := repo.ListSongsInPlaylist(ctx, anaList.ID)
		require.NoError(t, err)
		require.Len(t, inPlaylist, 1)
		assert.Equal(t, s2.ID, inPlaylist[0].ID)
		inPlaylist, err = repo.ListSongsInPlaylist(ctx, bobList.ID)
		require.NoError(t, err)
		assert.NotNil(t, inPlaylist)
		assert.Empty(t, inPlaylist)

		containing, err := repo.ListPlaylistsBySong(ctx, s1.ID)
		require.NoError(t, err)
		assert.NotNil(t, containing)
		assert.Empty(t, containing)
		containing, err = repo.ListPlaylistsBySong(ctx, s2.ID)
		require.NoError(t, err)
		require.Len(t, containing, 1)
		assert.Equal(t, anaList.ID, containing[0].ID)

		deleted, err = repo.DeleteUser(ctx, ana.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		_, err = repo.GetPlaylist(ctx, anaList.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = repo.GetPlaylist(ctx, bobList.ID)
		assert.NoError(t, err)

		owned, err := repo.ListPlaylistsByUser(ctx, ana.ID)
		require.NoError(t, err)
		assert.NotNil(t, owned)
		assert.Empty(t, owned)

		deleted, err = repo.DeletePlaylist(ctx, bobList.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = repo.GetUser(ctx, bob.ID)
		assert.NoError(t, err, "deleting a playlist leaves its owner alone")
		_, err = repo.GetSong(ctx, s2.ID)
		assert.NoError(t, err)
	})
}

func TestListByUnknownReferenceIsEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		byUser, err := repo.ListPlaylistsByUser(ctx, "ghost")
		require.NoError(t, err)
		assert.NotNil(t, byUser)
		assert.Empty(t, byUser)

		bySong, err := repo.ListPlaylistsBySong(ctx, "ghost")
		require.NoError(t, err)
		assert.NotNil(t, bySong)
		assert.Empty(t, bySong)

		songs, err := repo.ListSongsInPlaylist(ctx, "ghost")
		require.NoError(t, err)
		assert.NotNil(t, songs)
		assert.Empty(t, songs)
	})
}

func TestOwnerDeletionScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		u1, err := repo.CreateUser(ctx, models.User{Name: "Ana", Age: 30})
		require.NoError(t, err)
		s1, err := repo.CreateSong(ctx, models.Song{Name: "Song A", Artist: "Artist X"})
		require.NoError(t, err)
		p1, err := repo.CreatePlaylist(ctx, models.Playlist{Name: "Mix", OwnerID: u1.ID})
		require.NoError(t, err)

		_, err = repo.AddSongToPlaylist(ctx, p1.ID, s1.ID)
		require.NoError(t, err)

		songs, err := repo.ListSongsInPlaylist(ctx, p1.ID)
		require.NoError(t, err)
		assert.Equal(t, []models.Song{s1}, songs)

		deleted, err := repo.DeleteUser(ctx, u1.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		_, err = repo.GetPlaylist(ctx, p1.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	owner, err := repo.CreateUser(ctx, models.User{Name: "Ana", Age: 30})
	require.NoError(t, err)
	song, err := repo.CreateSong(ctx, models.Song{Name: "One", Artist: "X"})
	require.NoError(t, err)
	playlist, err := repo.CreatePlaylist(ctx, models.Playlist{Name: "Mix", OwnerID: owner.ID, SongIDs: []string{song.ID}})
	require.NoError(t, err)

	playlist.SongIDs[0] = "tampered"

	got, err := repo.GetPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{song.ID}, got.SongIDs)
}

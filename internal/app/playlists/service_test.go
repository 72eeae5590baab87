package playlists

import (
	"context"
	"errors"
	"slices"
	"testing"

	"musicstream/internal/models"
	"musicstream/internal/repository"
)

func seed(t *testing.T) (*repository.InMemoryRepository, models.User, models.Song) {
	t.Helper()
	repo := repository.NewInMemoryRepository()
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, models.User{Name: "Ana", Age: 30})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	song, err := repo.CreateSong(ctx, models.Song{Name: "Song A", Artist: "Artist X"})
	if err != nil {
		t.Fatalf("CreateSong error: %v", err)
	}
	return repo, user, song
}

func TestCreateValidation(t *testing.T) {
	repo, user, song := seed(t)
	svc := New(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		playlist models.Playlist
		wantErr  error
	}{
		{name: "missing name", playlist: models.Playlist{OwnerID: user.ID}, wantErr: models.ErrInvalid},
		{name: "missing owner", playlist: models.Playlist{Name: "Mix"}, wantErr: models.ErrInvalid},
		{name: "blank song id", playlist: models.Playlist{Name: "Mix", OwnerID: user.ID, SongIDs: []string{" "}}, wantErr: models.ErrInvalid},
		{name: "unknown owner", playlist: models.Playlist{Name: "Mix", OwnerID: "ghost"}, wantErr: repository.ErrReference},
		{name: "valid", playlist: models.Playlist{Name: "Mix", OwnerID: user.ID, SongIDs: []string{song.ID}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.playlist)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Create error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateDedupesSongs(t *testing.T) {
	repo, user, song := seed(t)
	svc := New(repo)

	playlist, err := svc.Create(context.Background(), models.Playlist{
		Name:    "Mix",
		OwnerID: user.ID,
		SongIDs: []string{song.ID, song.ID},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !slices.Equal(playlist.SongIDs, []string{song.ID}) {
		t.Fatalf("expected one song, got %v", playlist.SongIDs)
	}
}

func TestSongMembership(t *testing.T) {
	repo, user, song := seed(t)
	svc := New(repo)
	ctx := context.Background()

	playlist, err := svc.Create(ctx, models.Playlist{Name: "Mix", OwnerID: user.ID})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.AddSong(ctx, playlist.ID, ""); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	if _, err := svc.AddSong(ctx, playlist.ID, song.ID); err != nil {
		t.Fatalf("AddSong error: %v", err)
	}
	songs, err := svc.Songs(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("Songs error: %v", err)
	}
	if len(songs) != 1 || songs[0] != song {
		t.Fatalf("unexpected songs %v", songs)
	}

	updated, err := svc.RemoveSong(ctx, playlist.ID, song.ID)
	if err != nil {
		t.Fatalf("RemoveSong error: %v", err)
	}
	if len(updated.SongIDs) != 0 {
		t.Fatalf("expected empty playlist, got %v", updated.SongIDs)
	}
}

func TestUpdateRejectsBlankOwner(t *testing.T) {
	repo, user, _ := seed(t)
	svc := New(repo)
	ctx := context.Background()

	playlist, err := svc.Create(ctx, models.Playlist{Name: "Mix", OwnerID: user.ID})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Update(ctx, playlist.ID, models.PlaylistPatch{OwnerID: models.Ptr("  ")}); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

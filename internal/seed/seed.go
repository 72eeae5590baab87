// Package seed fills a catalogue with generated users, songs and playlists.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"musicstream/internal/models"
)

// Playlist size bounds, inclusive.
const (
	MinSongsPerPlaylist = 3
	MaxSongsPerPlaylist = 20
)

// UserCreator creates users.
type UserCreator interface {
	Create(ctx context.Context, user models.User) (models.User, error)
}

// SongCreator creates songs.
type SongCreator interface {
	Create(ctx context.Context, song models.Song) (models.Song, error)
}

// PlaylistCreator creates playlists.
type PlaylistCreator interface {
	Create(ctx context.Context, playlist models.Playlist) (models.Playlist, error)
}

// Options sizes a generation run.
type Options struct {
	Users     int
	Songs     int
	Playlists int
	Seed      uint64
	// ProgressEvery logs a progress line after this many entities of a kind. Zero disables it.
	ProgressEvery int
}

// Stats reports what a run created.
type Stats struct {
	Users          int
	Songs          int
	Playlists      int
	PlaylistTracks int
}

// Generator creates entities through the app services so validation applies.
type Generator struct {
	users     UserCreator
	songs     SongCreator
	playlists PlaylistCreator
}

// New returns a Generator over the given services.
func New(users UserCreator, songs SongCreator, playlists PlaylistCreator) *Generator {
	return &Generator{users: users, songs: songs, playlists: playlists}
}

// Run creates opts.Users users, opts.Songs songs and opts.Playlists playlists.
// Each playlist gets between MinSongsPerPlaylist and MaxSongsPerPlaylist distinct songs,
// capped by the number of songs available. The same seed yields the same names and picks.
func (g *Generator) Run(ctx context.Context, opts Options) (Stats, error) {
	if opts.Users < 0 || opts.Songs < 0 || opts.Playlists < 0 {
		return Stats{}, fmt.Errorf("%w: counts must not be negative", models.ErrInvalid)
	}
	if opts.Playlists > 0 && opts.Users == 0 {
		return Stats{}, fmt.Errorf("%w: playlists need at least one user", models.ErrInvalid)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	var stats Stats

	userIDs := make([]string, 0, opts.Users)
	for i := range opts.Users {
		user, err := g.users.Create(ctx, models.User{Name: personName(rng), Age: 13 + rng.IntN(68)})
		if err != nil {
			return stats, fmt.Errorf("create user %d: %w", i+1, err)
		}
		userIDs = append(userIDs, user.ID)
		stats.Users++
		progress(opts.ProgressEvery, stats.Users, opts.Users, "users")
	}

	songIDs := make([]string, 0, opts.Songs)
	for i := range opts.Songs {
		song, err := g.songs.Create(ctx, models.Song{Name: songTitle(rng), Artist: artistName(rng)})
		if err != nil {
			return stats, fmt.Errorf("create song %d: %w", i+1, err)
		}
		songIDs = append(songIDs, song.ID)
		stats.Songs++
		progress(opts.ProgressEvery, stats.Songs, opts.Songs, "songs")
	}

	for i := range opts.Playlists {
		picks := pickSongs(rng, songIDs)
		playlist, err := g.playlists.Create(ctx, models.Playlist{
			Name:    title(pick(rng, words)) + " " + title(pick(rng, words)),
			OwnerID: userIDs[rng.IntN(len(userIDs))],
			SongIDs: picks,
		})
		if err != nil {
			return stats, fmt.Errorf("create playlist %d: %w", i+1, err)
		}
		stats.Playlists++
		stats.PlaylistTracks += len(playlist.SongIDs)
		progress(opts.ProgressEvery, stats.Playlists, opts.Playlists, "playlists")
	}

	return stats, nil
}

// pickSongs samples distinct ids without replacement.
func pickSongs(rng *rand.Rand, songIDs []string) []string {
	if len(songIDs) == 0 {
		return nil
	}
	n := MinSongsPerPlaylist + rng.IntN(MaxSongsPerPlaylist-MinSongsPerPlaylist+1)
	n = min(n, len(songIDs))

	perm := rng.Perm(len(songIDs))[:n]
	picks := make([]string, n)
	for i, idx := range perm {
		picks[i] = songIDs[idx]
	}
	return picks
}

func progress(every, done, total int, kind string) {
	if every <= 0 || (done%every != 0 && done != total) {
		return
	}
	log.Info().Int("done", done).Int("total", total).Str("kind", kind).Msg("seeding")
}

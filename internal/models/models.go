package models

import (
	"errors"
	"slices"
)

// ErrInvalid marks a request that is missing a required field or carries a malformed value.
var ErrInvalid = errors.New("invalid input")

// User is a listener who can own playlists.
type User struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Age  int    `json:"age" db:"age"`
}

// Song is a catalogue entry that playlists reference by id.
type Song struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Artist string `json:"artist" db:"artist"`
}

// Playlist is an ordered, duplicate-free list of song ids owned by a user.
type Playlist struct {
	ID      string   `json:"id" db:"id"`
	Name    string   `json:"name" db:"name"`
	OwnerID string   `json:"ownerId" db:"owner_id"`
	SongIDs []string `json:"songIds"`
}

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name *string `json:"name,omitempty"`
	Age  *int    `json:"age,omitempty"`
}

// SongPatch carries the fields of a partial song update. Nil fields are left untouched.
type SongPatch struct {
	Name   *string `json:"name,omitempty"`
	Artist *string `json:"artist,omitempty"`
}

// PlaylistPatch carries the fields of a partial playlist update. Nil fields are left untouched.
// Song membership is managed through the add/remove operations only.
type PlaylistPatch struct {
	Name    *string `json:"name,omitempty"`
	OwnerID *string `json:"ownerId,omitempty"`
}

// Apply returns a copy of u with the patch applied.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	return u
}

// Apply returns a copy of s with the patch applied.
func (p SongPatch) Apply(s Song) Song {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Artist != nil {
		s.Artist = *p.Artist
	}
	return s
}

// Apply returns a copy of pl with the patch applied.
func (p PlaylistPatch) Apply(pl Playlist) Playlist {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.OwnerID != nil {
		pl.OwnerID = *p.OwnerID
	}
	return pl.Clone()
}

// Clone returns a deep copy so callers never share the SongIDs backing array.
func (p Playlist) Clone() Playlist {
	clone := p
	clone.SongIDs = make([]string, len(p.SongIDs))
	copy(clone.SongIDs, p.SongIDs)
	return clone
}

// HasSong reports whether songID is a member of the playlist.
func (p Playlist) HasSong(songID string) bool {
	return slices.Contains(p.SongIDs, songID)
}

// DedupeIDs drops repeated ids, keeping the first occurrence of each.
func DedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}

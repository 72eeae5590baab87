package graphqlapi

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"musicstream/internal/models"
)

func (r *resolver) listUsers(p graphql.ResolveParams) (any, error) {
	return r.users.List(p.Context)
}

func (r *resolver) getUser(p graphql.ResolveParams) (any, error) {
	return nullIfMissing(r.users.Get(p.Context, stringArg(p.Args, "id")))
}

func (r *resolver) userPlaylists(p graphql.ResolveParams) (any, error) {
	user, ok := p.Source.(models.User)
	if !ok {
		return nil, fmt.Errorf("unexpected user source %T", p.Source)
	}
	return r.users.Playlists(p.Context, user.ID)
}

func (r *resolver) createUser(p graphql.ResolveParams) (any, error) {
	age, _ := p.Args["age"].(int)
	return r.users.Create(p.Context, models.User{
		ID:   stringArg(p.Args, "id"),
		Name: stringArg(p.Args, "name"),
		Age:  age,
	})
}

func (r *resolver) updateUser(p graphql.ResolveParams) (any, error) {
	return r.users.Update(p.Context, stringArg(p.Args, "id"), models.UserPatch{
		Name: optionalString(p.Args, "name"),
		Age:  optionalInt(p.Args, "age"),
	})
}

func (r *resolver) deleteUser(p graphql.ResolveParams) (any, error) {
	return r.users.Delete(p.Context, stringArg(p.Args, "id"))
}

func (r *resolver) listSongs(p graphql.ResolveParams) (any, error) {
	return r.songs.List(p.Context)
}

func (r *resolver) getSong(p graphql.ResolveParams) (any, error) {
	return nullIfMissing(r.songs.Get(p.Context, stringArg(p.Args, "id")))
}

func (r *resolver) createSong(p graphql.ResolveParams) (any, error) {
	return r.songs.Create(p.Context, models.Song{
		ID:     stringArg(p.Args, "id"),
		Name:   stringArg(p.Args, "name"),
		Artist: stringArg(p.Args, "artist"),
	})
}

func (r *resolver) updateSong(p graphql.ResolveParams) (any, error) {
	return r.songs.Update(p.Context, stringArg(p.Args, "id"), models.SongPatch{
		Name:   optionalString(p.Args, "name"),
		Artist: optionalString(p.Args, "artist"),
	})
}

func (r *resolver) deleteSong(p graphql.ResolveParams) (any, error) {
	return r.songs.Delete(p.Context, stringArg(p.Args, "id"))
}

func (r *resolver) listPlaylists(p graphql.ResolveParams) (any, error) {
	return r.playlists.List(p.Context)
}

func (r *resolver) getPlaylist(p graphql.ResolveParams) (any, error) {
	return nullIfMissing(r.playlists.Get(p.Context, stringArg(p.Args, "id")))
}

func (r *resolver) playlistsByUser(p graphql.ResolveParams) (any, error) {
	return r.users.Playlists(p.Context, stringArg(p.Args, "userId"))
}

func (r *resolver) songsInPlaylist(p graphql.ResolveParams) (any, error) {
	return r.playlists.Songs(p.Context, stringArg(p.Args, "playlistId"))
}

func (r *resolver) playlistsBySong(p graphql.ResolveParams) (any, error) {
	return r.songs.Playlists(p.Context, stringArg(p.Args, "songId"))
}

func (r *resolver) createPlaylist(p graphql.ResolveParams) (any, error) {
	return r.playlists.Create(p.Context, models.Playlist{
		ID:      stringArg(p.Args, "id"),
		Name:    stringArg(p.Args, "name"),
		OwnerID: stringArg(p.Args, "ownerId"),
		SongIDs: stringList(p.Args, "songIds"),
	})
}

func (r *resolver) updatePlaylist(p graphql.ResolveParams) (any, error) {
	return r.playlists.Update(p.Context, stringArg(p.Args, "id"), models.PlaylistPatch{
		Name:    optionalString(p.Args, "name"),
		OwnerID: optionalString(p.Args, "ownerId"),
	})
}

func (r *resolver) deletePlaylist(p graphql.ResolveParams) (any, error) {
	return r.playlists.Delete(p.Context, stringArg(p.Args, "id"))
}

func (r *resolver) addSongToPlaylist(p graphql.ResolveParams) (any, error) {
	return r.playlists.AddSong(p.Context, stringArg(p.Args, "playlistId"), stringArg(p.Args, "songId"))
}

func (r *resolver) removeSongFromPlaylist(p graphql.ResolveParams) (any, error) {
	return r.playlists.RemoveSong(p.Context, stringArg(p.Args, "playlistId"), stringArg(p.Args, "songId"))
}

func playlistSource(p graphql.ResolveParams) (models.Playlist, error) {
	playlist, ok := p.Source.(models.Playlist)
	if !ok {
		return models.Playlist{}, fmt.Errorf("unexpected playlist source %T", p.Source)
	}
	return playlist, nil
}

func (r *resolver) playlistOwnerID(p graphql.ResolveParams) (any, error) {
	playlist, err := playlistSource(p)
	if err != nil {
		return nil, err
	}
	return playlist.OwnerID, nil
}

func (r *resolver) playlistSongIDs(p graphql.ResolveParams) (any, error) {
	playlist, err := playlistSource(p)
	if err != nil {
		return nil, err
	}
	return playlist.SongIDs, nil
}

func (r *resolver) playlistOwner(p graphql.ResolveParams) (any, error) {
	playlist, err := playlistSource(p)
	if err != nil {
		return nil, err
	}
	return nullIfMissing(r.users.Get(p.Context, playlist.OwnerID))
}

func (r *resolver) playlistSongs(p graphql.ResolveParams) (any, error) {
	playlist, err := playlistSource(p)
	if err != nil {
		return nil, err
	}
	return r.playlists.Songs(p.Context, playlist.ID)
}

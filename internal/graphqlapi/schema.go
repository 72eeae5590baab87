// Package graphqlapi exposes the catalogue through a GraphQL schema built with graphql-go.
package graphqlapi

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"

	"musicstream/internal/models"
	"musicstream/internal/repository"
)

// UserService is the user surface resolvers call.
type UserService interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Playlists(ctx context.Context, id string) ([]models.Playlist, error)
}

// SongService is the song surface resolvers call.
type SongService interface {
	Create(ctx context.Context, song models.Song) (models.Song, error)
	Get(ctx context.Context, id string) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Update(ctx context.Context, id string, patch models.SongPatch) (models.Song, error)
	Delete(ctx context.Context, id string) (bool, error)
	Playlists(ctx context.Context, id string) ([]models.Playlist, error)
}

// PlaylistService is the playlist surface resolvers call.
type PlaylistService interface {
	Create(ctx context.Context, playlist models.Playlist) (models.Playlist, error)
	Get(ctx context.Context, id string) (models.Playlist, error)
	List(ctx context.Context) ([]models.Playlist, error)
	Update(ctx context.Context, id string, patch models.PlaylistPatch) (models.Playlist, error)
	Delete(ctx context.Context, id string) (bool, error)
	Songs(ctx context.Context, id string) ([]models.Song, error)
	AddSong(ctx context.Context, playlistID, songID string) (models.Playlist, error)
	RemoveSong(ctx context.Context, playlistID, songID string) (models.Playlist, error)
}

type resolver struct {
	users     UserService
	songs     SongService
	playlists PlaylistService
}

// NewSchema builds the executable schema over the given services.
func NewSchema(users UserService, songs SongService, playlists PlaylistService) (graphql.Schema, error) {
	r := &resolver{users: users, songs: songs, playlists: playlists}

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"age":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	songType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Song",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"artist": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	playlistType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Playlist",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"ownerId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: r.playlistOwnerID},
			"songIds": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID))), Resolve: r.playlistSongIDs},
			"owner":   &graphql.Field{Type: userType, Resolve: r.playlistOwner},
			"songs":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(songType))), Resolve: r.playlistSongs},
		},
	})

	userType.AddFieldConfig("playlists", &graphql.Field{
		Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(playlistType))),
		Resolve: r.userPlaylists,
	})

	idArg := graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}}
	membershipArgs := graphql.FieldConfigArgument{
		"playlistId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		"songId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users":     &graphql.Field{Type: graphql.NewList(userType), Resolve: r.listUsers},
			"user":      &graphql.Field{Type: userType, Args: idArg, Resolve: r.getUser},
			"songs":     &graphql.Field{Type: graphql.NewList(songType), Resolve: r.listSongs},
			"song":      &graphql.Field{Type: songType, Args: idArg, Resolve: r.getSong},
			"playlists": &graphql.Field{Type: graphql.NewList(playlistType), Resolve: r.listPlaylists},
			"playlist":  &graphql.Field{Type: playlistType, Args: idArg, Resolve: r.getPlaylist},
			"playlistsByUser": &graphql.Field{
				Type:    graphql.NewList(playlistType),
				Args:    graphql.FieldConfigArgument{"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
				Resolve: r.playlistsByUser,
			},
			"songsInPlaylist": &graphql.Field{
				Type:    graphql.NewList(songType),
				Args:    graphql.FieldConfigArgument{"playlistId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
				Resolve: r.songsInPlaylist,
			},
			"playlistsBySong": &graphql.Field{
				Type:    graphql.NewList(playlistType),
				Args:    graphql.FieldConfigArgument{"songId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
				Resolve: r.playlistsBySong,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.ID},
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"age":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.createUser,
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name": &graphql.ArgumentConfig{Type: graphql.String},
					"age":  &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.updateUser,
			},
			"deleteUser": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean), Args: idArg, Resolve: r.deleteUser},
			"createSong": &graphql.Field{
				Type: songType,
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.ID},
					"name":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"artist": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.createSong,
			},
			"updateSong": &graphql.Field{
				Type: songType,
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":   &graphql.ArgumentConfig{Type: graphql.String},
					"artist": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.updateSong,
			},
			"deleteSong": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean), Args: idArg, Resolve: r.deleteSong},
			"createPlaylist": &graphql.Field{
				Type: playlistType,
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.ID},
					"name":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"ownerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"songIds": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
				},
				Resolve: r.createPlaylist,
			},
			"updatePlaylist": &graphql.Field{
				Type: playlistType,
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":    &graphql.ArgumentConfig{Type: graphql.String},
					"ownerId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.updatePlaylist,
			},
			"deletePlaylist":         &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean), Args: idArg, Resolve: r.deletePlaylist},
			"addSongToPlaylist":      &graphql.Field{Type: playlistType, Args: membershipArgs, Resolve: r.addSongToPlaylist},
			"removeSongFromPlaylist": &graphql.Field{Type: playlistType, Args: membershipArgs, Resolve: r.removeSongFromPlaylist},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// nullIfMissing turns ErrNotFound into a null result for single-entity lookups.
func nullIfMissing(v any, err error) (any, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func optionalString(args map[string]any, key string) *string {
	v, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &v
}

func optionalInt(args map[string]any, key string) *int {
	v, ok := args[key].(int)
	if !ok {
		return nil
	}
	return &v
}

func stringList(args map[string]any, key string) []string {
	raw, _ := args[key].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

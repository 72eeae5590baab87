package soapapi

import (
	"context"

	"musicstream/internal/models"
)

func (h *Handler) createUser(ctx context.Context, req request) (*response, error) {
	name, err := required(req.Name, "name")
	if err != nil {
		return nil, err
	}
	if req.Age == nil {
		return nil, clientErrorf("age is required")
	}
	age, err := parseAge(req.Age)
	if err != nil {
		return nil, err
	}

	user := models.User{Name: name, Age: *age}
	if req.ID != nil {
		user.ID = *req.ID
	}
	created, err := h.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return &response{User: toUserXML(created)}, nil
}

func (h *Handler) getUser(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	user, err := h.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &response{User: toUserXML(user)}, nil
}

func (h *Handler) listUsers(ctx context.Context, _ request) (*response, error) {
	users, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return &response{Users: toUserList(users)}, nil
}

func (h *Handler) updateUser(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	age, err := parseAge(req.Age)
	if err != nil {
		return nil, err
	}
	user, err := h.users.Update(ctx, id, models.UserPatch{Name: req.Name, Age: age})
	if err != nil {
		return nil, err
	}
	return &response{User: toUserXML(user)}, nil
}

func (h *Handler) deleteUser(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	deleted, err := h.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := notFoundUnless(deleted, "user"); err != nil {
		return nil, err
	}
	return &response{Success: &deleted}, nil
}

func (h *Handler) createSong(ctx context.Context, req request) (*response, error) {
	name, err := required(req.Name, "name")
	if err != nil {
		return nil, err
	}
	artist, err := required(req.Artist, "artist")
	if err != nil {
		return nil, err
	}

	song := models.Song{Name: name, Artist: artist}
	if req.ID != nil {
		song.ID = *req.ID
	}
	created, err := h.songs.Create(ctx, song)
	if err != nil {
		return nil, err
	}
	return &response{Song: toSongXML(created)}, nil
}

func (h *Handler) getSong(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	song, err := h.songs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &response{Song: toSongXML(song)}, nil
}

func (h *Handler) listSongs(ctx context.Context, _ request) (*response, error) {
	songs, err := h.songs.List(ctx)
	if err != nil {
		return nil, err
	}
	return &response{Songs: toSongList(songs)}, nil
}

func (h *Handler) updateSong(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	song, err := h.songs.Update(ctx, id, models.SongPatch{Name: req.Name, Artist: req.Artist})
	if err != nil {
		return nil, err
	}
	return &response{Song: toSongXML(song)}, nil
}

func (h *Handler) deleteSong(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	deleted, err := h.songs.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := notFoundUnless(deleted, "song"); err != nil {
		return nil, err
	}
	return &response{Success: &deleted}, nil
}

func (h *Handler) createPlaylist(ctx context.Context, req request) (*response, error) {
	name, err := required(req.Name, "name")
	if err != nil {
		return nil, err
	}
	owner, err := required(req.OwnerID, "ownerId")
	if err != nil {
		return nil, err
	}

	playlist := models.Playlist{Name: name, OwnerID: owner, SongIDs: req.SongIDs}
	if req.ID != nil {
		playlist.ID = *req.ID
	}
	created, err := h.playlists.Create(ctx, playlist)
	if err != nil {
		return nil, err
	}
	return &response{Playlist: toPlaylistXML(created)}, nil
}

func (h *Handler) getPlaylist(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	playlist, err := h.playlists.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &response{Playlist: toPlaylistXML(playlist)}, nil
}

func (h *Handler) listPlaylists(ctx context.Context, _ request) (*response, error) {
	playlists, err := h.playlists.List(ctx)
	if err != nil {
		return nil, err
	}
	return &response{Playlists: toPlaylistSet(playlists)}, nil
}

func (h *Handler) listPlaylistsByUser(ctx context.Context, req request) (*response, error) {
	userID, err := required(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	playlists, err := h.users.Playlists(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &response{Playlists: toPlaylistSet(playlists)}, nil
}

func (h *Handler) listSongsInPlaylist(ctx context.Context, req request) (*response, error) {
	playlistID, err := required(req.PlaylistID, "playlistId")
	if err != nil {
		return nil, err
	}
	songs, err := h.playlists.Songs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return &response{Songs: toSongList(songs)}, nil
}

func (h *Handler) listPlaylistsBySong(ctx context.Context, req request) (*response, error) {
	songID, err := required(req.SongID, "songId")
	if err != nil {
		return nil, err
	}
	playlists, err := h.songs.Playlists(ctx, songID)
	if err != nil {
		return nil, err
	}
	return &response{Playlists: toPlaylistSet(playlists)}, nil
}

func (h *Handler) updatePlaylist(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	playlist, err := h.playlists.Update(ctx, id, models.PlaylistPatch{Name: req.Name, OwnerID: req.OwnerID})
	if err != nil {
		return nil, err
	}
	return &response{Playlist: toPlaylistXML(playlist)}, nil
}

func (h *Handler) addSongToPlaylist(ctx context.Context, req request) (*response, error) {
	return h.changeMembership(ctx, req, h.playlists.AddSong)
}

func (h *Handler) removeSongFromPlaylist(ctx context.Context, req request) (*response, error) {
	return h.changeMembership(ctx, req, h.playlists.RemoveSong)
}

func (h *Handler) changeMembership(
	ctx context.Context,
	req request,
	apply func(ctx context.Context, playlistID, songID string) (models.Playlist, error),
) (*response, error) {
	playlistID, err := required(req.PlaylistID, "playlistId")
	if err != nil {
		return nil, err
	}
	songID, err := required(req.SongID, "songId")
	if err != nil {
		return nil, err
	}
	playlist, err := apply(ctx, playlistID, songID)
	if err != nil {
		return nil, err
	}
	return &response{Playlist: toPlaylistXML(playlist)}, nil
}

func (h *Handler) deletePlaylist(ctx context.Context, req request) (*response, error) {
	id, err := required(req.ID, "id")
	if err != nil {
		return nil, err
	}
	deleted, err := h.playlists.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := notFoundUnless(deleted, "playlist"); err != nil {
		return nil, err
	}
	return &response{Success: &deleted}, nil
}

package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"musicstream/internal/models"
)

type playlistRequest struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	OwnerID string   `json:"ownerId"`
	SongIDs []string `json:"songIds"`
}

type playlistSongRequest struct {
	SongID string `json:"songId"`
}

func (s *Server) listPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.playlists.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	playlist, err := s.playlists.Create(r.Context(), models.Playlist{
		ID:      req.ID,
		Name:    req.Name,
		OwnerID: req.OwnerID,
		SongIDs: req.SongIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

func (s *Server) getPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.playlists.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) updatePlaylist(w http.ResponseWriter, r *http.Request) {
	var patch models.PlaylistPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	playlist, err := s.playlists.Update(r.Context(), pathID(r), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.playlists.Delete(r.Context(), pathID(r))
	writeDeleted(w, r, deleted, err)
}

func (s *Server) listPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.playlists.Songs(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) addPlaylistSong(w http.ResponseWriter, r *http.Request) {
	var req playlistSongRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	playlist, err := s.playlists.AddSong(r.Context(), pathID(r), req.SongID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) removePlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.playlists.RemoveSong(r.Context(), pathID(r), mux.Vars(r)["songId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

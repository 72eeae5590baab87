package httpapi

import (
	"net/http"

	"musicstream/internal/models"
)

func (s *Server) listSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) createSong(w http.ResponseWriter, r *http.Request) {
	var req models.Song
	if !decodeJSON(w, r, &req) {
		return
	}

	song, err := s.songs.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) getSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.songs.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) updateSong(w http.ResponseWriter, r *http.Request) {
	var patch models.SongPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	song, err := s.songs.Update(r.Context(), pathID(r), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) deleteSong(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.songs.Delete(r.Context(), pathID(r))
	writeDeleted(w, r, deleted, err)
}

func (s *Server) listSongPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.songs.Playlists(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

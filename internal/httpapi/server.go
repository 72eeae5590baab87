// Package httpapi exposes the catalogue over a JSON REST interface.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"musicstream/internal/logging"
	"musicstream/internal/models"
	"musicstream/internal/repository"
)

// UserService captures the user operations needed by the HTTP handlers.
type UserService interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Playlists(ctx context.Context, id string) ([]models.Playlist, error)
}

// SongService coordinates song operations.
type SongService interface {
	Create(ctx context.Context, song models.Song) (models.Song, error)
	Get(ctx context.Context, id string) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Update(ctx context.Context, id string, patch models.SongPatch) (models.Song, error)
	Delete(ctx context.Context, id string) (bool, error)
	Playlists(ctx context.Context, id string) ([]models.Playlist, error)
}

// PlaylistService coordinates playlist-related operations.
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

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users     UserService
	songs     SongService
	playlists PlaylistService
}

// New configures a Server with the given services.
func New(users UserService, songs SongService, playlists PlaylistService) *Server {
	return &Server{users: users, songs: songs, playlists: playlists}
}

// Register mounts the REST routes and the health probe on router.
func (s *Server) Register(router *mux.Router) {
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	router.HandleFunc("/api/users", s.listUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/users", s.createUser).Methods(http.MethodPost)
	router.HandleFunc("/api/users/{id}", s.getUser).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}", s.updateUser).Methods(http.MethodPut)
	router.HandleFunc("/api/users/{id}", s.deleteUser).Methods(http.MethodDelete)
	router.HandleFunc("/api/users/{id}/playlists", s.listUserPlaylists).Methods(http.MethodGet)

	router.HandleFunc("/api/songs", s.listSongs).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", s.createSong).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id}", s.getSong).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", s.updateSong).Methods(http.MethodPut)
	router.HandleFunc("/api/songs/{id}", s.deleteSong).Methods(http.MethodDelete)
	router.HandleFunc("/api/songs/{id}/playlists", s.listSongPlaylists).Methods(http.MethodGet)

	router.HandleFunc("/api/playlists", s.listPlaylists).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", s.createPlaylist).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", s.getPlaylist).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", s.updatePlaylist).Methods(http.MethodPut)
	router.HandleFunc("/api/playlists/{id}", s.deletePlaylist).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/songs", s.listPlaylistSongs).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}/songs", s.addPlaylistSong).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/songs/{songId}", s.removePlaylistSong).Methods(http.MethodDelete)
}

// Routes returns a standalone handler serving only the REST surface.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	s.Register(router)
	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps repository and validation errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrInvalid), errors.Is(err, repository.ErrReference):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logging.WithContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	return true
}

// writeDeleted answers a delete call: 204 when something was removed, 404 otherwise.
func writeDeleted(w http.ResponseWriter, r *http.Request, deleted bool, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: repository.ErrNotFound.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

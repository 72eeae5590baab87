// Package soapapi exposes the catalogue as SOAP 1.1 operations on a single endpoint.
package soapapi

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"musicstream/internal/logging"
	"musicstream/internal/models"
	"musicstream/internal/repository"
)

const maxRequestBytes = 1 << 20

// UserService is the user surface the SOAP operations call.
type UserService interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Playlists(ctx context.Context, id string) ([]models.Playlist, error)
}

// SongService is the song surface the SOAP operations call.
type SongService interface {
	Create(ctx context.Context, song models.Song) (models.Song, error)
	Get(ctx context.Context, id string) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Update(ctx context.Context, id string, patch models.SongPatch) (models.Song, error)
	Delete(ctx context.Context, id string) (bool, error)
	Playlists(ctx context.Context, id string) ([]models.Playlist, error)
}

// PlaylistService is the playlist surface the SOAP operations call.
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

type operation func(ctx context.Context, req request) (*response, error)

// Handler dispatches SOAP envelopes to catalogue operations.
type Handler struct {
	users      UserService
	songs      SongService
	playlists  PlaylistService
	operations map[string]operation
}

// New builds a Handler over the given services.
func New(users UserService, songs SongService, playlists PlaylistService) *Handler {
	h := &Handler{users: users, songs: songs, playlists: playlists}
	h.operations = map[string]operation{
		"createUser":             h.createUser,
		"getUser":                h.getUser,
		"listUsers":              h.listUsers,
		"updateUser":             h.updateUser,
		"deleteUser":             h.deleteUser,
		"createSong":             h.createSong,
		"getSong":                h.getSong,
		"listSongs":              h.listSongs,
		"updateSong":             h.updateSong,
		"deleteSong":             h.deleteSong,
		"createPlaylist":         h.createPlaylist,
		"getPlaylist":            h.getPlaylist,
		"listPlaylists":          h.listPlaylists,
		"listPlaylistsByUser":    h.listPlaylistsByUser,
		"listSongsInPlaylist":    h.listSongsInPlaylist,
		"listPlaylistsBySong":    h.listPlaylistsBySong,
		"updatePlaylist":         h.updatePlaylist,
		"addSongToPlaylist":      h.addSongToPlaylist,
		"removeSongFromPlaylist": h.removeSongFromPlaylist,
		"deletePlaylist":         h.deletePlaylist,
	}
	return h
}

// Register mounts the endpoint at /soap and its contract at /wsdl and /soap?wsdl.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/wsdl", serveWSDL).Methods(http.MethodGet)
	router.HandleFunc("/soap", serveWSDL).Methods(http.MethodGet).Queries("wsdl", "")
	router.Handle("/soap", h).Methods(http.MethodPost)
}

// clientError marks a failure caused by the caller's request.
type clientError struct {
	msg string
}

func (e clientError) Error() string { return e.msg }

func clientErrorf(format string, args ...any) error {
	return clientError{msg: fmt.Sprintf(format, args...)}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		h.writeFault(w, r, clientErrorf("read request: %v", err))
		return
	}

	name, req, err := parseRequest(body)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}

	op, ok := h.operations[name]
	if !ok {
		h.writeFault(w, r, clientErrorf("operation %s not found", name))
		return
	}

	resp, err := op(r.Context(), req)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}

	resp.XMLName = xml.Name{Local: "tns:" + name + "Response"}
	writeEnvelope(w, http.StatusOK, responseEnvelope{
		SoapNS: EnvelopeNS,
		TNS:    TargetNS,
		Body:   responseBody{Response: resp},
	})
}

// parseRequest returns the name of the first element inside soap:Body and its decoded parameters.
func parseRequest(body []byte) (string, request, error) {
	var env requestEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return "", request{}, clientErrorf("malformed SOAP envelope: %v", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(env.Body.Inner))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", request{}, clientErrorf("SOAP body contains no operation")
		}
		if err != nil {
			return "", request{}, clientErrorf("malformed SOAP body: %v", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var req request
		if err := dec.DecodeElement(&req, &start); err != nil {
			return "", request{}, clientErrorf("malformed %s request: %v", start.Name.Local, err)
		}
		return start.Name.Local, req, nil
	}
}

func (h *Handler) writeFault(w http.ResponseWriter, r *http.Request, err error) {
	code := "soap:Server"
	var ce clientError
	switch {
	case errors.As(err, &ce),
		errors.Is(err, models.ErrInvalid),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrReference),
		errors.Is(err, repository.ErrAlreadyExists):
		code = "soap:Client"
	default:
		logging.WithContext(r.Context()).Error().Err(err).Msg("soap operation failed")
	}

	writeEnvelope(w, http.StatusInternalServerError, responseEnvelope{
		SoapNS: EnvelopeNS,
		Body:   responseBody{Fault: &fault{Code: code, String: err.Error()}},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env responseEnvelope) {
	payload, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		http.Error(w, "encode SOAP response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(payload)
}

func required(value *string, field string) (string, error) {
	if value == nil {
		return "", clientErrorf("%s is required", field)
	}
	return *value, nil
}

func parseAge(value *string) (*int, error) {
	if value == nil {
		return nil, nil
	}
	age, err := strconv.Atoi(strings.TrimSpace(*value))
	if err != nil {
		return nil, clientErrorf("age must be an integer")
	}
	return &age, nil
}

func notFoundUnless(found bool, entity string) error {
	if !found {
		return fmt.Errorf("%s %w", entity, repository.ErrNotFound)
	}
	return nil
}

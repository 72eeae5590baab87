package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"musicstream/internal/database"
	"musicstream/internal/models"
)

const (
	insertUserQuery = `
		INSERT INTO users (id, name, age, seq)
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX(seq), 0) + 1 FROM users))`
	selectUserQuery = `
		SELECT id, name, age
		FROM users
		WHERE id = $1`
	listUsersQuery = `
		SELECT id, name, age
		FROM users
		ORDER BY seq ASC, id ASC`
	updateUserQuery = `
		UPDATE users
		SET name = COALESCE($1, name), age = COALESCE($2, age)
		WHERE id = $3
		RETURNING id, name, age`
	deleteOwnedPlaylistSongsQuery = `
		DELETE FROM playlist_songs
		WHERE playlist_id IN (SELECT id FROM playlists WHERE owner_id = $1)`
	deleteOwnedPlaylistsQuery = `DELETE FROM playlists WHERE owner_id = $1`
	deleteUserQuery           = `DELETE FROM users WHERE id = $1`
	userExistsQuery           = `SELECT 1 FROM users WHERE id = $1`

	insertSongQuery = `
		INSERT INTO songs (id, name, artist, seq)
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX(seq), 0) + 1 FROM songs))`
	selectSongQuery = `
		SELECT id, name, artist
		FROM songs
		WHERE id = $1`
	listSongsQuery = `
		SELECT id, name, artist
		FROM songs
		ORDER BY seq ASC, id ASC`
	updateSongQuery = `
		UPDATE songs
		SET name = COALESCE($1, name), artist = COALESCE($2, artist)
		WHERE id = $3
		RETURNING id, name, artist`
	deleteSongMembershipsQuery = `DELETE FROM playlist_songs WHERE song_id = $1`
	deleteSongQuery            = `DELETE FROM songs WHERE id = $1`
	songExistsQuery            = `SELECT 1 FROM songs WHERE id = $1`

	insertPlaylistQuery = `
		INSERT INTO playlists (id, name, owner_id, seq)
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX(seq), 0) + 1 FROM playlists))`
	selectPlaylistQuery = `
		SELECT id, name, owner_id
		FROM playlists
		WHERE id = $1`
	listPlaylistsQuery = `
		SELECT id, name, owner_id
		FROM playlists
		ORDER BY seq ASC, id ASC`
	listPlaylistsByUserQuery = `
		SELECT id, name, owner_id
		FROM playlists
		WHERE owner_id = $1
		ORDER BY seq ASC, id ASC`
	listPlaylistsBySongQuery = `
		SELECT p.id, p.name, p.owner_id
		FROM playlists p
		JOIN playlist_songs ps ON ps.playlist_id = p.id
		WHERE ps.song_id = $1
		ORDER BY p.seq ASC, p.id ASC`
	updatePlaylistQuery = `
		UPDATE playlists
		SET name = COALESCE($1, name), owner_id = COALESCE($2, owner_id)
		WHERE id = $3`
	deletePlaylistSongsQuery = `DELETE FROM playlist_songs WHERE playlist_id = $1`
	deletePlaylistQuery      = `DELETE FROM playlists WHERE id = $1`
	playlistExistsQuery      = `SELECT 1 FROM playlists WHERE id = $1`

	playlistSongIDsQuery = `
		SELECT song_id
		FROM playlist_songs
		WHERE playlist_id = $1
		ORDER BY position ASC`
	listSongsInPlaylistQuery = `
		SELECT s.id, s.name, s.artist
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC`
	insertPlaylistSongQuery = `
		INSERT INTO playlist_songs (playlist_id, song_id, position)
		VALUES ($1, $2, $3)`
	appendPlaylistSongQuery = `
		INSERT INTO playlist_songs (playlist_id, song_id, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_songs WHERE playlist_id = $1))
		ON CONFLICT (playlist_id, song_id) DO NOTHING`
	removePlaylistSongQuery = `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2`
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLRepository persists the catalogue in Postgres or SQLite.
type SQLRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSQLRepository creates a repository over db using the placeholder and error rules of dialect.
func NewSQLRepository(db *sql.DB, dialect database.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// CreateUser inserts user, generating an id when none is supplied.
func (r *SQLRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, err := r.db.ExecContext(ctx, r.q(insertUserQuery), user.ID, user.Name, user.Age); err != nil {
		return models.User{}, r.translate("insert user", err)
	}
	return user, nil
}

// GetUser returns the user with id.
func (r *SQLRepository) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, r.q(selectUserQuery), id).Scan(&user.ID, &user.Name, &user.Age)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListUsers returns every user in insertion order.
func (r *SQLRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, r.q(listUsersQuery))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Age); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the supplied fields of patch.
func (r *SQLRepository) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, r.q(updateUserQuery), nullable(patch.Name), nullable(patch.Age), id).
		Scan(&user.ID, &user.Name, &user.Age)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the user together with every playlist it owns.
func (r *SQLRepository) DeleteUser(ctx context.Context, id string) (bool, error) {
	return r.deleteCascade(ctx, "user", id,
		deleteOwnedPlaylistSongsQuery,
		deleteOwnedPlaylistsQuery,
		deleteUserQuery,
	)
}

// CreateSong inserts song, generating an id when none is supplied.
func (r *SQLRepository) CreateSong(ctx context.Context, song models.Song) (models.Song, error) {
	if song.ID == "" {
		song.ID = uuid.NewString()
	}
	if _, err := r.db.ExecContext(ctx, r.q(insertSongQuery), song.ID, song.Name, song.Artist); err != nil {
		return models.Song{}, r.translate("insert song", err)
	}
	return song, nil
}

// GetSong returns the song with id.
func (r *SQLRepository) GetSong(ctx context.Context, id string) (models.Song, error) {
	var song models.Song
	err := r.db.QueryRowContext(ctx, r.q(selectSongQuery), id).Scan(&song.ID, &song.Name, &song.Artist)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Song{}, ErrNotFound
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// ListSongs returns every song in insertion order.
func (r *SQLRepository) ListSongs(ctx context.Context) ([]models.Song, error) {
	return r.querySongs(ctx, r.db, listSongsQuery)
}

// UpdateSong applies the supplied fields of patch.
func (r *SQLRepository) UpdateSong(ctx context.Context, id string, patch models.SongPatch) (models.Song, error) {
	var song models.Song
	err := r.db.QueryRowContext(ctx, r.q(updateSongQuery), nullable(patch.Name), nullable(patch.Artist), id).
		Scan(&song.ID, &song.Name, &song.Artist)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Song{}, ErrNotFound
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("update song: %w", err)
	}
	return song, nil
}

// DeleteSong removes the song and its membership in every playlist.
func (r *SQLRepository) DeleteSong(ctx context.Context, id string) (bool, error) {
	return r.deleteCascade(ctx, "song", id,
		deleteSongMembershipsQuery,
		deleteSongQuery,
	)
}

// CreatePlaylist inserts playlist after checking its owner and every initial song.
func (r *SQLRepository) CreatePlaylist(ctx context.Context, playlist models.Playlist) (result models.Playlist, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.requireRow(ctx, tx, userExistsQuery, playlist.OwnerID, missingUser(playlist.OwnerID)); err != nil {
		return models.Playlist{}, err
	}
	songIDs := models.DedupeIDs(playlist.SongIDs)
	for _, songID := range songIDs {
		if err = r.requireRow(ctx, tx, songExistsQuery, songID, missingSong(songID)); err != nil {
			return models.Playlist{}, err
		}
	}

	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}
	if _, err = tx.ExecContext(ctx, r.q(insertPlaylistQuery), playlist.ID, playlist.Name, playlist.OwnerID); err != nil {
		return models.Playlist{}, r.translate("insert playlist", err)
	}
	for idx, songID := range songIDs {
		if _, err = tx.ExecContext(ctx, r.q(insertPlaylistSongQuery), playlist.ID, songID, idx+1); err != nil {
			return models.Playlist{}, r.translate("insert playlist song", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.Playlist{}, fmt.Errorf("commit playlist create: %w", err)
	}

	playlist.SongIDs = songIDs
	return playlist, nil
}

// GetPlaylist returns the playlist with id and its song ids.
func (r *SQLRepository) GetPlaylist(ctx context.Context, id string) (models.Playlist, error) {
	return r.loadPlaylist(ctx, r.db, id)
}

// ListPlaylists returns every playlist in insertion order.
func (r *SQLRepository) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return r.queryPlaylists(ctx, listPlaylistsQuery)
}

// UpdatePlaylist applies the supplied fields of patch. A new owner must exist.
func (r *SQLRepository) UpdatePlaylist(ctx context.Context, id string, patch models.PlaylistPatch) (result models.Playlist, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.requireRow(ctx, tx, playlistExistsQuery, id, ErrNotFound); err != nil {
		return models.Playlist{}, err
	}
	if patch.OwnerID != nil {
		if err = r.requireRow(ctx, tx, userExistsQuery, *patch.OwnerID, missingUser(*patch.OwnerID)); err != nil {
			return models.Playlist{}, err
		}
	}

	if _, err = tx.ExecContext(ctx, r.q(updatePlaylistQuery), nullable(patch.Name), nullable(patch.OwnerID), id); err != nil {
		return models.Playlist{}, r.translate("update playlist", err)
	}

	if result, err = r.loadPlaylist(ctx, tx, id); err != nil {
		return models.Playlist{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Playlist{}, fmt.Errorf("commit playlist update: %w", err)
	}
	return result, nil
}

// DeletePlaylist removes the playlist and its song memberships.
func (r *SQLRepository) DeletePlaylist(ctx context.Context, id string) (bool, error) {
	return r.deleteCascade(ctx, "playlist", id,
		deletePlaylistSongsQuery,
		deletePlaylistQuery,
	)
}

// ListPlaylistsByUser returns the playlists owned by userID.
func (r *SQLRepository) ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	return r.queryPlaylists(ctx, listPlaylistsByUserQuery, userID)
}

// ListPlaylistsBySong returns the playlists that contain songID.
func (r *SQLRepository) ListPlaylistsBySong(ctx context.Context, songID string) ([]models.Playlist, error) {
	return r.queryPlaylists(ctx, listPlaylistsBySongQuery, songID)
}

// ListSongsInPlaylist returns the playlist's songs in playlist order.
func (r *SQLRepository) ListSongsInPlaylist(ctx context.Context, playlistID string) ([]models.Song, error) {
	return r.querySongs(ctx, r.db, listSongsInPlaylistQuery, playlistID)
}

// AddSongToPlaylist appends songID unless it is already a member.
func (r *SQLRepository) AddSongToPlaylist(ctx context.Context, playlistID, songID string) (models.Playlist, error) {
	return r.changeMembership(ctx, playlistID, songID, true)
}

// RemoveSongFromPlaylist drops songID from the playlist. A non-member is a no-op.
func (r *SQLRepository) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) (models.Playlist, error) {
	return r.changeMembership(ctx, playlistID, songID, false)
}

func (r *SQLRepository) changeMembership(ctx context.Context, playlistID, songID string, add bool) (result models.Playlist, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.requireRow(ctx, tx, playlistExistsQuery, playlistID, ErrNotFound); err != nil {
		return models.Playlist{}, err
	}

	if add {
		if err = r.requireRow(ctx, tx, songExistsQuery, songID, missingSong(songID)); err != nil {
			return models.Playlist{}, err
		}
		if _, err = tx.ExecContext(ctx, r.q(appendPlaylistSongQuery), playlistID, songID); err != nil {
			return models.Playlist{}, r.translate("add playlist song", err)
		}
	} else {
		if _, err = tx.ExecContext(ctx, r.q(removePlaylistSongQuery), playlistID, songID); err != nil {
			return models.Playlist{}, fmt.Errorf("remove playlist song: %w", err)
		}
	}

	if result, err = r.loadPlaylist(ctx, tx, playlistID); err != nil {
		return models.Playlist{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Playlist{}, fmt.Errorf("commit playlist songs: %w", err)
	}
	return result, nil
}

// deleteCascade runs the dependent cleanup statements and finally the owning delete,
// whose last statement decides whether the entity existed. All statements take id as $1.
func (r *SQLRepository) deleteCascade(ctx context.Context, entity, id string, statements ...string) (found bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil || !found {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	for _, stmt := range statements {
		if res, err = tx.ExecContext(ctx, r.q(stmt), id); err != nil {
			return false, fmt.Errorf("delete %s: %w", entity, err)
		}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit %s delete: %w", entity, err)
	}
	return true, nil
}

func (r *SQLRepository) loadPlaylist(ctx context.Context, q querier, id string) (models.Playlist, error) {
	var playlist models.Playlist
	err := q.QueryRowContext(ctx, r.q(selectPlaylistQuery), id).Scan(&playlist.ID, &playlist.Name, &playlist.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Playlist{}, ErrNotFound
	}
	if err != nil {
		return models.Playlist{}, fmt.Errorf("get playlist: %w", err)
	}

	if playlist.SongIDs, err = r.songIDs(ctx, q, id); err != nil {
		return models.Playlist{}, err
	}
	return playlist, nil
}

// queryPlaylists drains the playlist rows before loading song ids so that a
// single-connection pool never needs two open result sets at once.
func (r *SQLRepository) queryPlaylists(ctx context.Context, query string, args ...any) ([]models.Playlist, error) {
	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}

	playlists := make([]models.Playlist, 0)
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.OwnerID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	rows.Close()

	for i := range playlists {
		if playlists[i].SongIDs, err = r.songIDs(ctx, r.db, playlists[i].ID); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

func (r *SQLRepository) songIDs(ctx context.Context, q querier, playlistID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, r.q(playlistSongIDsQuery), playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}
	return ids, nil
}

func (r *SQLRepository) querySongs(ctx context.Context, q querier, query string, args ...any) ([]models.Song, error) {
	rows, err := q.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.Song, 0)
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Name, &song.Artist); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// requireRow returns missing when query finds no row for id.
func (r *SQLRepository) requireRow(ctx context.Context, q querier, query, id string, missing error) error {
	var one int
	err := q.QueryRowContext(ctx, r.q(query), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return missing
	}
	if err != nil {
		return fmt.Errorf("lookup %s: %w", id, err)
	}
	return nil
}

func (r *SQLRepository) q(query string) string {
	return r.dialect.Rebind(query)
}

// translate maps constraint violations onto repository errors; anything else is wrapped with op.
func (r *SQLRepository) translate(op string, err error) error {
	switch {
	case r.dialect.IsUniqueViolation(err):
		return ErrAlreadyExists
	case r.dialect.IsForeignKeyViolation(err):
		return &ReferenceError{Entity: "row"}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

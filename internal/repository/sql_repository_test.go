package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"musicstream/internal/database"
	"musicstream/internal/models"
)

func newMockRepository(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLRepository(db, database.Postgres), mock
}

func TestSQLCreateUserDuplicateID(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserQuery)).
		WithArgs("u1", "Ana", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), models.User{ID: "u1", Name: "Ana", Age: 30})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLUpdateUserNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(updateUserQuery)).
		WithArgs("Ana", nil, "ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateUser(context.Background(), "ghost", models.UserPatch{Name: models.Ptr("Ana")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLDeleteUserCascades(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteOwnedPlaylistSongsQuery)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(deleteOwnedPlaylistsQuery)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteUserQuery)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.DeleteUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DeleteUser error: %v", err)
	}
	if !deleted {
		t.Fatalf("expected user to be deleted")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLDeleteSongMissingRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSongMembershipsQuery)).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteSongQuery)).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	deleted, err := repo.DeleteSong(context.Background(), "s1")
	if err != nil {
		t.Fatalf("DeleteSong error: %v", err)
	}
	if deleted {
		t.Fatalf("expected missing song to report false")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLAddSongChecksPlaylistFirst(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(playlistExistsQuery)).
		WithArgs("p1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.AddSongToPlaylist(context.Background(), "p1", "s1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLAddSongMissingSong(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(playlistExistsQuery)).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(songExistsQuery)).
		WithArgs("s9").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.AddSongToPlaylist(context.Background(), "p1", "s9")
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
	if refErr.Entity != "song" || refErr.ID != "s9" {
		t.Fatalf("unexpected reference error %+v", refErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLGetPlaylistLoadsSongsInOrder(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectPlaylistQuery)).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}).AddRow("p1", "Mix", "u1"))
	mock.ExpectQuery(regexp.QuoteMeta(playlistSongIDsQuery)).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"song_id"}).AddRow("s2").AddRow("s1"))

	got, err := repo.GetPlaylist(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetPlaylist error: %v", err)
	}
	if got.OwnerID != "u1" || len(got.SongIDs) != 2 || got.SongIDs[0] != "s2" || got.SongIDs[1] != "s1" {
		t.Fatalf("unexpected playlist %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLCreatePlaylistForeignKeyRace(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(userExistsQuery)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(insertPlaylistQuery)).
		WithArgs("p1", "Mix", "u1").
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := repo.CreatePlaylist(context.Background(), models.Playlist{ID: "p1", Name: "Mix", OwnerID: "u1"})
	if !errors.Is(err, ErrReference) {
		t.Fatalf("expected ErrReference, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

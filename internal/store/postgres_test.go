package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/models"
)

func mockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db := New(conn, Postgres)
	db.SetClock(func() time.Time { return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC) })
	return db, mock
}

func TestPostgresUniqueViolationIsConflict(t *testing.T) {
	db, mock := mockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM videos WHERE youtube_id = \$1 AND id <> \$2`).
		WithArgs("NzOMiZBg1kY", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO videos .* VALUES \(\$1, \$2, .*\$13\)`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	in := models.VideoInput{
		Title:      "Oud Solo",
		YouTubeID:  "NzOMiZBg1kY",
		YouTubeURL: "https://www.youtube.com/watch?v=NzOMiZBg1kY",
	}
	_, err := db.CreateVideo(context.Background(), in)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresReclassifyUsesDateParameters(t *testing.T) {
	db, mock := mockDB(t)
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE events SET is_past = \$1, updated_at = \$2 WHERE date < \$3 AND is_past = \$4`).
		WithArgs(true, now, "2026-10-18", false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE events SET is_past = \$1, updated_at = \$2 WHERE date >= \$3 AND is_past = \$4`).
		WithArgs(false, now, "2026-10-18", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO classifier_runs`).
		WithArgs("2026-10-18", int64(3), int64(1), now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := db.ReclassifyEvents(context.Background(), models.NewDate(2026, time.October, 18))
	if err != nil {
		t.Fatalf("ReclassifyEvents: %v", err)
	}
	if res.MarkedPast != 3 || res.MarkedUpcoming != 1 {
		t.Errorf("result = %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresForeignKeyViolationIsValidation(t *testing.T) {
	err := mapWriteErr("insert video", &pgconn.PgError{Code: "23503"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if err := mapWriteErr("insert video", errors.New("boom")); errors.Is(err, apperr.ErrConflict) {
		t.Errorf("plain error mapped to conflict")
	}
}

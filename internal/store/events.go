package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/starford/maqam/internal/models"
)

const eventColumns = `id, title, date, time, venue, location, description, ensemble_name,
	event_type, is_past, photo_url, created_at, updated_at`

func scanEvent(row rowScanner) (models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Venue, &e.Location, &e.Description,
		&e.EnsembleName, &e.EventType, &e.IsPast, &e.PhotoURL, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// ListEvents returns events ordered by date, ties broken by id.
func (db *DB) ListEvents(ctx context.Context, f EventFilter) ([]models.Event, error) {
	var (
		where []string
		args  []any
	)
	if f.Past != nil {
		where = append(where, "is_past = ?")
		args = append(args, *f.Past)
	}

	q := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.Descending {
		q += ` ORDER BY date DESC, id DESC`
	} else {
		q += ` ORDER BY date ASC, id ASC`
	}

	rows, err := db.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list events: %w", err)
	}
	defer rows.Close()

	out := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// FindEvent returns the event with the given id.
func (db *DB) FindEvent(ctx context.Context, id int64) (models.Event, error) {
	e, err := scanEvent(db.queryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, notFound(KindEvent, id)
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("store: get event: %w", err)
	}
	return e, nil
}

// CreateEvent inserts an event. A nil IsPast is stored as false.
func (db *DB) CreateEvent(ctx context.Context, in models.EventInput) (models.Event, error) {
	var out models.Event
	err := db.InTx(ctx, func(tx *Tx) error {
		id, err := tx.InsertEvent(ctx, in)
		if err != nil {
			return err
		}
		out, err = scanEvent(tx.queryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
		return err
	})
	return out, err
}

// InsertEvent inserts an event row.
func (t *Tx) InsertEvent(ctx context.Context, in models.EventInput) (int64, error) {
	isPast := in.IsPast != nil && *in.IsPast
	var id int64
	err := t.queryRow(ctx, `
		INSERT INTO events (title, date, time, venue, location, description, ensemble_name,
			event_type, is_past, photo_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		in.Title, in.Date, in.Time, in.Venue, in.Location, in.Description, in.EnsembleName,
		in.EventType, isPast, in.PhotoURL, t.now,
	).Scan(&id)
	if err != nil {
		return 0, mapWriteErr("insert event", err)
	}
	return id, nil
}

// UpdateEvent applies p to the event with the given id.
func (db *DB) UpdateEvent(ctx context.Context, id int64, p models.EventPatch) (models.Event, error) {
	var out models.Event
	err := db.InTx(ctx, func(tx *Tx) error {
		cur, err := scanEvent(tx.queryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(KindEvent, id)
		}
		if err != nil {
			return fmt.Errorf("store: get event: %w", err)
		}

		var s setList
		if p.Title != nil {
			s.add("title", *p.Title)
		}
		if p.Date != nil {
			s.add("date", *p.Date)
		}
		if p.Time != nil {
			s.add("time", *p.Time)
		}
		if p.Venue != nil {
			s.add("venue", *p.Venue)
		}
		if p.Location != nil {
			s.add("location", *p.Location)
		}
		if p.Description != nil {
			s.add("description", *p.Description)
		}
		if p.EnsembleName != nil {
			s.add("ensemble_name", *p.EnsembleName)
		}
		if p.EventType != nil {
			s.add("event_type", *p.EventType)
		}
		if p.IsPast != nil {
			s.add("is_past", *p.IsPast)
		}
		if p.PhotoURL != nil {
			s.add("photo_url", *p.PhotoURL)
		}
		if s.empty() {
			out = cur
			return nil
		}

		q, args := s.statement(KindEvent, tx.now, id)
		if _, err := tx.exec(ctx, q, args...); err != nil {
			return mapWriteErr("update event", err)
		}
		out, err = scanEvent(tx.queryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
		return err
	})
	return out, err
}

// DeleteEvent removes the event with the given id. Linked videos keep existing with no event.
func (db *DB) DeleteEvent(ctx context.Context, id int64) error {
	return db.InTx(ctx, func(tx *Tx) error {
		return deleteByID(ctx, tx, KindEvent, id)
	})
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/maqam/internal/models"
)

// ReclassifyResult counts the events moved by one classifier pass.
type ReclassifyResult struct {
	MarkedPast     int64 `json:"marked_as_past"`
	MarkedUpcoming int64 `json:"marked_as_upcoming"`
}

// ClassifierRun is a recorded classifier pass.
type ClassifierRun struct {
	RunDate models.Date
	ReclassifyResult
	RanAt time.Time
}

// ReclassifyEvents sets is_past = date < today for every event in one transaction
// and records the pass.
func (db *DB) ReclassifyEvents(ctx context.Context, today models.Date) (ReclassifyResult, error) {
	var res ReclassifyResult
	err := db.InTx(ctx, func(tx *Tx) error {
		r, err := tx.exec(ctx,
			`UPDATE events SET is_past = ?, updated_at = ? WHERE date < ? AND is_past = ?`,
			true, tx.now, today, false)
		if err != nil {
			return fmt.Errorf("store: mark past events: %w", err)
		}
		res.MarkedPast, _ = r.RowsAffected()

		r, err = tx.exec(ctx,
			`UPDATE events SET is_past = ?, updated_at = ? WHERE date >= ? AND is_past = ?`,
			false, tx.now, today, true)
		if err != nil {
			return fmt.Errorf("store: mark upcoming events: %w", err)
		}
		res.MarkedUpcoming, _ = r.RowsAffected()

		_, err = tx.exec(ctx,
			`INSERT INTO classifier_runs (run_date, marked_past, marked_upcoming, ran_at) VALUES (?, ?, ?, ?)`,
			today, res.MarkedPast, res.MarkedUpcoming, tx.now)
		if err != nil {
			return fmt.Errorf("store: record classifier run: %w", err)
		}
		return nil
	})
	return res, err
}

// LastClassifierRun returns the most recent recorded pass, if any.
func (db *DB) LastClassifierRun(ctx context.Context) (ClassifierRun, bool, error) {
	var run ClassifierRun
	err := db.queryRow(ctx, `
		SELECT run_date, marked_past, marked_upcoming, ran_at
		FROM classifier_runs
		ORDER BY id DESC
		LIMIT 1`,
	).Scan(&run.RunDate, &run.MarkedPast, &run.MarkedUpcoming, &run.RanAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ClassifierRun{}, false, nil
	}
	if err != nil {
		return ClassifierRun{}, false, fmt.Errorf("store: last classifier run: %w", err)
	}
	return run, true, nil
}

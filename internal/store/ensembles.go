package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/models"
)

const ensembleColumns = `id, name, description, formation_year, musical_style, vision,
	contact_email, contact_phone, members, highlights, created_at, updated_at`

func scanEnsemble(row rowScanner) (models.Ensemble, error) {
	var e models.Ensemble
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.FormationYear, &e.MusicalStyle, &e.Vision,
		&e.ContactEmail, &e.ContactPhone, &e.Members, &e.Highlights, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// ListEnsembles returns all ensembles by id.
func (db *DB) ListEnsembles(ctx context.Context) ([]models.Ensemble, error) {
	rows, err := db.query(ctx, `SELECT `+ensembleColumns+` FROM ensembles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list ensembles: %w", err)
	}
	defer rows.Close()

	out := []models.Ensemble{}
	for rows.Next() {
		e, err := scanEnsemble(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan ensemble: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// FindEnsemble returns the ensemble with the given id.
func (db *DB) FindEnsemble(ctx context.Context, id int64) (models.Ensemble, error) {
	e, err := scanEnsemble(db.queryRow(ctx, `SELECT `+ensembleColumns+` FROM ensembles WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ensemble{}, notFound(KindEnsemble, id)
	}
	if err != nil {
		return models.Ensemble{}, fmt.Errorf("store: get ensemble: %w", err)
	}
	return e, nil
}

// FirstEnsemble returns the ensemble with the lowest id, the one presented as the main ensemble.
func (db *DB) FirstEnsemble(ctx context.Context) (models.Ensemble, error) {
	e, err := scanEnsemble(db.queryRow(ctx, `SELECT `+ensembleColumns+` FROM ensembles ORDER BY id LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ensemble{}, fmt.Errorf("store: ensemble: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return models.Ensemble{}, fmt.Errorf("store: get ensemble: %w", err)
	}
	return e, nil
}

// CreateEnsemble inserts an ensemble. A duplicate name fails with ErrConflict.
func (db *DB) CreateEnsemble(ctx context.Context, in models.EnsembleInput) (models.Ensemble, error) {
	var out models.Ensemble
	err := db.InTx(ctx, func(tx *Tx) error {
		if err := tx.ensureEnsembleNameFree(ctx, in.Name, 0); err != nil {
			return err
		}
		id, err := tx.InsertEnsemble(ctx, in)
		if err != nil {
			return err
		}
		out, err = scanEnsemble(tx.queryRow(ctx, `SELECT `+ensembleColumns+` FROM ensembles WHERE id = ?`, id))
		return err
	})
	return out, err
}

// InsertEnsemble inserts an ensemble row.
func (t *Tx) InsertEnsemble(ctx context.Context, in models.EnsembleInput) (int64, error) {
	var id int64
	err := t.queryRow(ctx, `
		INSERT INTO ensembles (name, description, formation_year, musical_style, vision,
			contact_email, contact_phone, members, highlights, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		in.Name, in.Description, in.FormationYear, in.MusicalStyle, in.Vision,
		in.ContactEmail, in.ContactPhone, in.Members, in.Highlights, t.now,
	).Scan(&id)
	if err != nil {
		return 0, mapWriteErr("insert ensemble", err)
	}
	return id, nil
}

func (t *Tx) ensureEnsembleNameFree(ctx context.Context, name string, selfID int64) error {
	var id int64
	err := t.queryRow(ctx, `SELECT id FROM ensembles WHERE name = ? AND id <> ?`, name, selfID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("store: check ensemble name: %w", err)
	default:
		return fmt.Errorf("store: ensemble %q already exists: %w", name, apperr.ErrConflict)
	}
}

// UpdateEnsemble applies p to the ensemble with the given id.
func (db *DB) UpdateEnsemble(ctx context.Context, id int64, p models.EnsemblePatch) (models.Ensemble, error) {
	var out models.Ensemble
	err := db.InTx(ctx, func(tx *Tx) error {
		cur, err := scanEnsemble(tx.queryRow(ctx, `SELECT `+ensembleColumns+` FROM ensembles WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(KindEnsemble, id)
		}
		if err != nil {
			return fmt.Errorf("store: get ensemble: %w", err)
		}

		var s setList
		if p.Name != nil && *p.Name != cur.Name {
			if err := tx.ensureEnsembleNameFree(ctx, *p.Name, id); err != nil {
				return err
			}
			s.add("name", *p.Name)
		}
		if p.Description != nil {
			s.add("description", *p.Description)
		}
		if p.FormationYear != nil {
			s.add("formation_year", *p.FormationYear)
		}
		if p.MusicalStyle != nil {
			s.add("musical_style", *p.MusicalStyle)
		}
		if p.Vision != nil {
			s.add("vision", *p.Vision)
		}
		if p.ContactEmail != nil {
			s.add("contact_email", *p.ContactEmail)
		}
		if p.ContactPhone != nil {
			s.add("contact_phone", *p.ContactPhone)
		}
		if p.Members != nil {
			s.add("members", *p.Members)
		}
		if p.Highlights != nil {
			s.add("highlights", *p.Highlights)
		}
		if s.empty() {
			out = cur
			return nil
		}

		q, args := s.statement(KindEnsemble, tx.now, id)
		if _, err := tx.exec(ctx, q, args...); err != nil {
			return mapWriteErr("update ensemble", err)
		}
		out, err = scanEnsemble(tx.queryRow(ctx, `SELECT `+ensembleColumns+` FROM ensembles WHERE id = ?`, id))
		return err
	})
	return out, err
}

// DeleteEnsemble removes the ensemble with the given id.
func (db *DB) DeleteEnsemble(ctx context.Context, id int64) error {
	return db.InTx(ctx, func(tx *Tx) error {
		return deleteByID(ctx, tx, KindEnsemble, id)
	})
}

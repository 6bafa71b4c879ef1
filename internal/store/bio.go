package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/models"
)

const bioColumns = `id, name, title, bio_text, education, achievements, current_roles, discography, created_at, updated_at`

func scanBio(row rowScanner) (models.Bio, error) {
	var b models.Bio
	err := row.Scan(&b.ID, &b.Name, &b.Title, &b.Biography,
		&b.Education, &b.Achievements, &b.CurrentRoles, &b.Discography,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// FirstBio returns the bio with the lowest id.
func (db *DB) FirstBio(ctx context.Context) (models.Bio, error) {
	b, err := scanBio(db.queryRow(ctx, `SELECT `+bioColumns+` FROM biography ORDER BY id LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bio{}, fmt.Errorf("store: bio: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return models.Bio{}, fmt.Errorf("store: get bio: %w", err)
	}
	return b, nil
}

// CreateBio inserts the bio. It fails with ErrConflict when one already exists.
func (db *DB) CreateBio(ctx context.Context, in models.BioInput) (models.Bio, error) {
	var out models.Bio
	err := db.InTx(ctx, func(tx *Tx) error {
		n, err := tx.Count(ctx, KindBio)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("store: bio already exists: %w", apperr.ErrConflict)
		}
		id, err := tx.InsertBio(ctx, in)
		if err != nil {
			return err
		}
		out, err = scanBio(tx.queryRow(ctx, `SELECT `+bioColumns+` FROM biography WHERE id = ?`, id))
		return err
	})
	return out, err
}

// InsertBio inserts a bio row without any existence check.
func (t *Tx) InsertBio(ctx context.Context, in models.BioInput) (int64, error) {
	var id int64
	err := t.queryRow(ctx, `
		INSERT INTO biography (name, title, bio_text, education, achievements, current_roles, discography, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		in.Name, in.Title, in.Biography, in.Education, in.Achievements, in.CurrentRoles, in.Discography, t.now,
	).Scan(&id)
	if err != nil {
		return 0, mapWriteErr("insert bio", err)
	}
	return id, nil
}

// UpdateFirstBio applies p to the bio with the lowest id.
func (db *DB) UpdateFirstBio(ctx context.Context, p models.BioPatch) (models.Bio, error) {
	var out models.Bio
	err := db.InTx(ctx, func(tx *Tx) error {
		cur, err := scanBio(tx.queryRow(ctx, `SELECT `+bioColumns+` FROM biography ORDER BY id LIMIT 1`))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("store: bio: %w", apperr.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("store: get bio: %w", err)
		}

		var s setList
		if p.Name != nil {
			s.add("name", *p.Name)
		}
		if p.Title != nil {
			s.add("title", *p.Title)
		}
		if p.Biography != nil {
			s.add("bio_text", *p.Biography)
		}
		if p.Education != nil {
			s.add("education", *p.Education)
		}
		if p.Achievements != nil {
			s.add("achievements", *p.Achievements)
		}
		if p.CurrentRoles != nil {
			s.add("current_roles", *p.CurrentRoles)
		}
		if p.Discography != nil {
			s.add("discography", *p.Discography)
		}
		if s.empty() {
			out = cur
			return nil
		}

		q, args := s.statement(KindBio, tx.now, cur.ID)
		if _, err := tx.exec(ctx, q, args...); err != nil {
			return mapWriteErr("update bio", err)
		}
		out, err = scanBio(tx.queryRow(ctx, `SELECT `+bioColumns+` FROM biography WHERE id = ?`, cur.ID))
		return err
	})
	return out, err
}

// DeleteBio removes the bio with the given id.
func (db *DB) DeleteBio(ctx context.Context, id int64) error {
	return db.InTx(ctx, func(tx *Tx) error {
		return deleteByID(ctx, tx, KindBio, id)
	})
}

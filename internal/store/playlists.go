package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/models"
)

const playlistColumns = `id, title, playlist_id, playlist_url, description, thumbnail_url, video_count,
	is_featured, display_order, is_visible, created_at, updated_at`

func scanPlaylist(row rowScanner) (models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(&p.ID, &p.Title, &p.PlaylistID, &p.PlaylistURL, &p.Description, &p.ThumbnailURL,
		&p.VideoCount, &p.IsFeatured, &p.DisplayOrder, &p.IsVisible, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListPlaylists returns playlists matching f ordered by display_order, then newest first.
func (db *DB) ListPlaylists(ctx context.Context, f PlaylistFilter) ([]models.Playlist, error) {
	var (
		where []string
		args  []any
	)
	if !f.IncludeHidden {
		where = append(where, "is_visible = ?")
		args = append(args, true)
	}
	if f.Featured != nil {
		where = append(where, "is_featured = ?")
		args = append(args, *f.Featured)
	}

	q := `SELECT ` + playlistColumns + ` FROM playlists`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY display_order ASC, created_at DESC, id DESC`
	q, args = paginate(q, args, f.Limit, f.Offset)

	rows, err := db.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list playlists: %w", err)
	}
	defer rows.Close()

	out := []models.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan playlist: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FindPlaylist returns the playlist with the given id regardless of visibility.
func (db *DB) FindPlaylist(ctx context.Context, id int64) (models.Playlist, error) {
	p, err := scanPlaylist(db.queryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Playlist{}, notFound(KindPlaylist, id)
	}
	if err != nil {
		return models.Playlist{}, fmt.Errorf("store: get playlist: %w", err)
	}
	return p, nil
}

// CreatePlaylist inserts a playlist. A duplicate playlist_id fails with ErrConflict.
func (db *DB) CreatePlaylist(ctx context.Context, in models.PlaylistInput) (models.Playlist, error) {
	var out models.Playlist
	err := db.InTx(ctx, func(tx *Tx) error {
		if err := tx.ensurePlaylistIDFree(ctx, in.PlaylistID, 0); err != nil {
			return err
		}
		id, err := tx.InsertPlaylist(ctx, in)
		if err != nil {
			return err
		}
		out, err = scanPlaylist(tx.queryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = ?`, id))
		return err
	})
	return out, err
}

// InsertPlaylist inserts a playlist row.
func (t *Tx) InsertPlaylist(ctx context.Context, in models.PlaylistInput) (int64, error) {
	var id int64
	err := t.queryRow(ctx, `
		INSERT INTO playlists (title, playlist_id, playlist_url, description, thumbnail_url, video_count,
			is_featured, display_order, is_visible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		in.Title, in.PlaylistID, in.PlaylistURL, in.Description, in.ThumbnailURL, in.VideoCount,
		in.IsFeatured, in.DisplayOrder, in.Visible(), t.now,
	).Scan(&id)
	if err != nil {
		return 0, mapWriteErr("insert playlist", err)
	}
	return id, nil
}

func (t *Tx) ensurePlaylistIDFree(ctx context.Context, playlistID string, selfID int64) error {
	var id int64
	err := t.queryRow(ctx, `SELECT id FROM playlists WHERE playlist_id = ? AND id <> ?`, playlistID, selfID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("store: check playlist_id: %w", err)
	default:
		return fmt.Errorf("store: playlist %q already exists: %w", playlistID, apperr.ErrConflict)
	}
}

// UpdatePlaylist applies p to the playlist with the given id, hidden or not.
func (db *DB) UpdatePlaylist(ctx context.Context, id int64, p models.PlaylistPatch) (models.Playlist, error) {
	var out models.Playlist
	err := db.InTx(ctx, func(tx *Tx) error {
		cur, err := scanPlaylist(tx.queryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(KindPlaylist, id)
		}
		if err != nil {
			return fmt.Errorf("store: get playlist: %w", err)
		}

		var s setList
		if p.Title != nil {
			s.add("title", *p.Title)
		}
		if p.PlaylistID != nil && *p.PlaylistID != cur.PlaylistID {
			if err := tx.ensurePlaylistIDFree(ctx, *p.PlaylistID, id); err != nil {
				return err
			}
			s.add("playlist_id", *p.PlaylistID)
		}
		if p.PlaylistURL != nil {
			s.add("playlist_url", *p.PlaylistURL)
		}
		if p.Description != nil {
			s.add("description", *p.Description)
		}
		if p.ThumbnailURL != nil {
			s.add("thumbnail_url", *p.ThumbnailURL)
		}
		if p.VideoCount != nil {
			s.add("video_count", *p.VideoCount)
		}
		if p.IsFeatured != nil {
			s.add("is_featured", *p.IsFeatured)
		}
		if p.DisplayOrder != nil {
			s.add("display_order", *p.DisplayOrder)
		}
		if p.IsVisible != nil {
			s.add("is_visible", *p.IsVisible)
		}
		if s.empty() {
			out = cur
			return nil
		}

		q, args := s.statement(KindPlaylist, tx.now, id)
		if _, err := tx.exec(ctx, q, args...); err != nil {
			return mapWriteErr("update playlist", err)
		}
		out, err = scanPlaylist(tx.queryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = ?`, id))
		return err
	})
	return out, err
}

// DeletePlaylist removes the playlist with the given id.
func (db *DB) DeletePlaylist(ctx context.Context, id int64) error {
	return db.InTx(ctx, func(tx *Tx) error {
		return deleteByID(ctx, tx, KindPlaylist, id)
	})
}

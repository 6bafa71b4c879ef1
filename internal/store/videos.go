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

const videoColumns = `id, title, youtube_id, youtube_url, description, thumbnail_url, duration,
	published_date, category, event_id, is_featured, display_order, is_visible, created_at, updated_at`

// Undated videos sort after dated ones within the same display_order in both dialects.
const videoOrder = ` ORDER BY display_order ASC, (published_date IS NULL) ASC, published_date DESC, id ASC`

func scanVideo(row rowScanner) (models.Video, error) {
	var v models.Video
	err := row.Scan(&v.ID, &v.Title, &v.YouTubeID, &v.YouTubeURL, &v.Description, &v.ThumbnailURL,
		&v.Duration, &v.PublishedDate, &v.Category, &v.EventID, &v.IsFeatured, &v.DisplayOrder,
		&v.IsVisible, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// ListVideos returns videos matching f ordered by display_order, then newest publish date.
// When EventID is set the publish date is not part of the ordering.
func (db *DB) ListVideos(ctx context.Context, f VideoFilter) ([]models.Video, error) {
	var (
		where []string
		args  []any
	)
	if !f.IncludeHidden {
		where = append(where, "is_visible = ?")
		args = append(args, true)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Featured != nil {
		where = append(where, "is_featured = ?")
		args = append(args, *f.Featured)
	}
	if f.EventID != nil {
		where = append(where, "event_id = ?")
		args = append(args, *f.EventID)
	}

	q := `SELECT ` + videoColumns + ` FROM videos`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.EventID != nil {
		q += ` ORDER BY display_order ASC, id ASC`
	} else {
		q += videoOrder
	}
	q, args = paginate(q, args, f.Limit, f.Offset)

	rows, err := db.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list videos: %w", err)
	}
	defer rows.Close()

	out := []models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan video: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// paginate appends LIMIT/OFFSET when limit is positive.
func paginate(q string, args []any, limit, offset int) (string, []any) {
	if limit <= 0 {
		return q, args
	}
	return q + ` LIMIT ? OFFSET ?`, append(args, limit, offset)
}

// FindVideo returns the video with the given id regardless of visibility.
func (db *DB) FindVideo(ctx context.Context, id int64) (models.Video, error) {
	v, err := scanVideo(db.queryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Video{}, notFound(KindVideo, id)
	}
	if err != nil {
		return models.Video{}, fmt.Errorf("store: get video: %w", err)
	}
	return v, nil
}

// CreateVideo inserts a video. A duplicate youtube_id fails with ErrConflict.
func (db *DB) CreateVideo(ctx context.Context, in models.VideoInput) (models.Video, error) {
	var out models.Video
	err := db.InTx(ctx, func(tx *Tx) error {
		if err := tx.ensureYouTubeIDFree(ctx, in.YouTubeID, 0); err != nil {
			return err
		}
		if in.EventID != nil {
			if err := tx.ensureEventExists(ctx, *in.EventID); err != nil {
				return err
			}
		}
		id, err := tx.InsertVideo(ctx, in)
		if err != nil {
			return err
		}
		out, err = scanVideo(tx.queryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id))
		return err
	})
	return out, err
}

// InsertVideo inserts a video row.
func (t *Tx) InsertVideo(ctx context.Context, in models.VideoInput) (int64, error) {
	var id int64
	err := t.queryRow(ctx, `
		INSERT INTO videos (title, youtube_id, youtube_url, description, thumbnail_url, duration,
			published_date, category, event_id, is_featured, display_order, is_visible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		in.Title, in.YouTubeID, in.YouTubeURL, in.Description, in.ThumbnailURL, in.Duration,
		in.PublishedDate, in.Category, in.EventID, in.IsFeatured, in.DisplayOrder, in.Visible(), t.now,
	).Scan(&id)
	if err != nil {
		return 0, mapWriteErr("insert video", err)
	}
	return id, nil
}

func (t *Tx) ensureYouTubeIDFree(ctx context.Context, youtubeID string, selfID int64) error {
	var id int64
	err := t.queryRow(ctx, `SELECT id FROM videos WHERE youtube_id = ? AND id <> ?`, youtubeID, selfID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("store: check youtube_id: %w", err)
	default:
		return fmt.Errorf("store: video with youtube_id %q already exists: %w", youtubeID, apperr.ErrConflict)
	}
}

func (t *Tx) ensureEventExists(ctx context.Context, eventID int64) error {
	var id int64
	err := t.queryRow(ctx, `SELECT id FROM events WHERE id = ?`, eventID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("store: event %d does not exist: %w", eventID, apperr.ErrValidation)
	case err != nil:
		return fmt.Errorf("store: check event: %w", err)
	}
	return nil
}

// UpdateVideo applies p to the video with the given id, hidden or not.
func (db *DB) UpdateVideo(ctx context.Context, id int64, p models.VideoPatch) (models.Video, error) {
	var out models.Video
	err := db.InTx(ctx, func(tx *Tx) error {
		cur, err := scanVideo(tx.queryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(KindVideo, id)
		}
		if err != nil {
			return fmt.Errorf("store: get video: %w", err)
		}

		var s setList
		if p.Title != nil {
			s.add("title", *p.Title)
		}
		if p.YouTubeID != nil && *p.YouTubeID != cur.YouTubeID {
			if err := tx.ensureYouTubeIDFree(ctx, *p.YouTubeID, id); err != nil {
				return err
			}
			s.add("youtube_id", *p.YouTubeID)
		}
		if p.YouTubeURL != nil {
			s.add("youtube_url", *p.YouTubeURL)
		}
		if p.Description != nil {
			s.add("description", *p.Description)
		}
		if p.ThumbnailURL != nil {
			s.add("thumbnail_url", *p.ThumbnailURL)
		}
		if p.Duration != nil {
			s.add("duration", *p.Duration)
		}
		if p.PublishedDate != nil {
			s.add("published_date", *p.PublishedDate)
		}
		if p.Category != nil {
			s.add("category", *p.Category)
		}
		if p.EventID != nil {
			if err := tx.ensureEventExists(ctx, *p.EventID); err != nil {
				return err
			}
			s.add("event_id", *p.EventID)
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

		q, args := s.statement(KindVideo, tx.now, id)
		if _, err := tx.exec(ctx, q, args...); err != nil {
			return mapWriteErr("update video", err)
		}
		out, err = scanVideo(tx.queryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id))
		return err
	})
	return out, err
}

// DeleteVideo removes the video with the given id.
func (db *DB) DeleteVideo(ctx context.Context, id int64) error {
	return db.InTx(ctx, func(tx *Tx) error {
		return deleteByID(ctx, tx, KindVideo, id)
	})
}

package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Playlist is a curated YouTube playlist. PlaylistID is unique.
type Playlist struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	PlaylistID   string     `json:"playlist_id"`
	PlaylistURL  string     `json:"playlist_url"`
	Description  string     `json:"description"`
	ThumbnailURL string     `json:"thumbnail_url"`
	VideoCount   *int       `json:"video_count"`
	IsFeatured   bool       `json:"is_featured"`
	DisplayOrder int        `json:"display_order"`
	IsVisible    bool       `json:"is_visible"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// PlaylistInput holds the fields of a new Playlist. A nil IsVisible means visible.
type PlaylistInput struct {
	Title        string `json:"title" yaml:"title"`
	PlaylistID   string `json:"playlist_id" yaml:"playlist_id"`
	PlaylistURL  string `json:"playlist_url" yaml:"playlist_url"`
	Description  string `json:"description" yaml:"description"`
	ThumbnailURL string `json:"thumbnail_url" yaml:"thumbnail_url"`
	VideoCount   *int   `json:"video_count" yaml:"video_count"`
	IsFeatured   bool   `json:"is_featured" yaml:"is_featured"`
	DisplayOrder int    `json:"display_order" yaml:"display_order"`
	IsVisible    *bool  `json:"is_visible" yaml:"is_visible"`
}

// Visible resolves the default visibility.
func (in PlaylistInput) Visible() bool {
	return in.IsVisible == nil || *in.IsVisible
}

func (in PlaylistInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.PlaylistID, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.PlaylistURL, validation.Required, validation.Length(1, 500), is.URL),
		validation.Field(&in.ThumbnailURL, validation.Length(0, 500)),
		validation.Field(&in.VideoCount, validation.Min(0)),
		validation.Field(&in.DisplayOrder, validation.Min(0)),
	)
}

// PlaylistPatch lists the Playlist fields eligible for partial update.
type PlaylistPatch struct {
	Title        *string `json:"title"`
	PlaylistID   *string `json:"playlist_id"`
	PlaylistURL  *string `json:"playlist_url"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnail_url"`
	VideoCount   *int    `json:"video_count"`
	IsFeatured   *bool   `json:"is_featured"`
	DisplayOrder *int    `json:"display_order"`
	IsVisible    *bool   `json:"is_visible"`
}

func (p PlaylistPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&p.PlaylistID, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&p.PlaylistURL, validation.NilOrNotEmpty, validation.Length(1, 500), is.URL),
		validation.Field(&p.ThumbnailURL, validation.Length(0, 500)),
		validation.Field(&p.VideoCount, validation.Min(0)),
		validation.Field(&p.DisplayOrder, validation.Min(0)),
	)
}

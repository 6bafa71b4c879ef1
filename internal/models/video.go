package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Video is a curated YouTube video. YouTubeID is unique.
type Video struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	YouTubeID     string     `json:"youtube_id"`
	YouTubeURL    string     `json:"youtube_url"`
	Description   string     `json:"description"`
	ThumbnailURL  string     `json:"thumbnail_url"`
	Duration      string     `json:"duration"`
	PublishedDate Date       `json:"published_date"`
	Category      string     `json:"category"`
	EventID       *int64     `json:"event_id"`
	IsFeatured    bool       `json:"is_featured"`
	DisplayOrder  int        `json:"display_order"`
	IsVisible     bool       `json:"is_visible"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// VideoInput holds the fields of a new Video. A nil IsVisible means visible.
type VideoInput struct {
	Title         string `json:"title" yaml:"title"`
	YouTubeID     string `json:"youtube_id" yaml:"youtube_id"`
	YouTubeURL    string `json:"youtube_url" yaml:"youtube_url"`
	Description   string `json:"description" yaml:"description"`
	ThumbnailURL  string `json:"thumbnail_url" yaml:"thumbnail_url"`
	Duration      string `json:"duration" yaml:"duration"`
	PublishedDate Date   `json:"published_date" yaml:"published_date"`
	Category      string `json:"category" yaml:"category"`
	EventID       *int64 `json:"event_id" yaml:"event_id"`
	IsFeatured    bool   `json:"is_featured" yaml:"is_featured"`
	DisplayOrder  int    `json:"display_order" yaml:"display_order"`
	IsVisible     *bool  `json:"is_visible" yaml:"is_visible"`
}

// Visible resolves the default visibility.
func (in VideoInput) Visible() bool {
	return in.IsVisible == nil || *in.IsVisible
}

func (in VideoInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.YouTubeID, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.YouTubeURL, validation.Required, validation.Length(1, 500), is.URL),
		validation.Field(&in.ThumbnailURL, validation.Length(0, 500)),
		validation.Field(&in.Duration, validation.Length(0, 20)),
		validation.Field(&in.Category, validation.Length(0, 100)),
		validation.Field(&in.DisplayOrder, validation.Min(0)),
	)
}

// VideoPatch lists the Video fields eligible for partial update.
type VideoPatch struct {
	Title         *string `json:"title"`
	YouTubeID     *string `json:"youtube_id"`
	YouTubeURL    *string `json:"youtube_url"`
	Description   *string `json:"description"`
	ThumbnailURL  *string `json:"thumbnail_url"`
	Duration      *string `json:"duration"`
	PublishedDate *Date   `json:"published_date"`
	Category      *string `json:"category"`
	EventID       *int64  `json:"event_id"`
	IsFeatured    *bool   `json:"is_featured"`
	DisplayOrder  *int    `json:"display_order"`
	IsVisible     *bool   `json:"is_visible"`
}

func (p VideoPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&p.YouTubeID, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&p.YouTubeURL, validation.NilOrNotEmpty, validation.Length(1, 500), is.URL),
		validation.Field(&p.ThumbnailURL, validation.Length(0, 500)),
		validation.Field(&p.Duration, validation.Length(0, 20)),
		validation.Field(&p.Category, validation.Length(0, 100)),
		validation.Field(&p.DisplayOrder, validation.Min(0)),
	)
}

package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Event is a concert or other dated appearance.
// EnsembleName is free text and is not checked against the ensembles table.
type Event struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Date         Date       `json:"date"`
	Time         string     `json:"time"`
	Venue        string     `json:"venue"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	EnsembleName string     `json:"ensemble_name"`
	EventType    string     `json:"event_type"`
	IsPast       bool       `json:"is_past"`
	PhotoURL     string     `json:"photo_url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// EventInput holds the fields of a new Event. A nil IsPast is derived from Date.
type EventInput struct {
	Title        string `json:"title" yaml:"title"`
	Date         Date   `json:"date" yaml:"date"`
	Time         string `json:"time" yaml:"time"`
	Venue        string `json:"venue" yaml:"venue"`
	Location     string `json:"location" yaml:"location"`
	Description  string `json:"description" yaml:"description"`
	EnsembleName string `json:"ensemble_name" yaml:"ensemble_name"`
	EventType    string `json:"event_type" yaml:"event_type"`
	IsPast       *bool  `json:"is_past" yaml:"is_past"`
	PhotoURL     string `json:"photo_url" yaml:"photo_url"`
}

func (in EventInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.Date, validation.Required),
		validation.Field(&in.Time, validation.Length(0, 50)),
		validation.Field(&in.Venue, validation.Length(0, 255)),
		validation.Field(&in.Location, validation.Length(0, 255)),
		validation.Field(&in.EnsembleName, validation.Length(0, 255)),
		validation.Field(&in.EventType, validation.Length(0, 100)),
		validation.Field(&in.PhotoURL, validation.Length(0, 500)),
	)
}

// EventPatch lists the Event fields eligible for partial update.
type EventPatch struct {
	Title        *string `json:"title"`
	Date         *Date   `json:"date"`
	Time         *string `json:"time"`
	Venue        *string `json:"venue"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	EnsembleName *string `json:"ensemble_name"`
	EventType    *string `json:"event_type"`
	IsPast       *bool   `json:"is_past"`
	PhotoURL     *string `json:"photo_url"`
}

func (p EventPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&p.Date, validation.NilOrNotEmpty),
		validation.Field(&p.Time, validation.Length(0, 50)),
		validation.Field(&p.Venue, validation.Length(0, 255)),
		validation.Field(&p.Location, validation.Length(0, 255)),
		validation.Field(&p.EnsembleName, validation.Length(0, 255)),
		validation.Field(&p.EventType, validation.Length(0, 100)),
		validation.Field(&p.PhotoURL, validation.Length(0, 500)),
	)
}

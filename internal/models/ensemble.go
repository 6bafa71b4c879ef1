package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Ensemble is a group the musician performs with. Name is unique.
type Ensemble struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	FormationYear *int       `json:"formation_year"`
	MusicalStyle  string     `json:"musical_style"`
	Vision        string     `json:"vision"`
	ContactEmail  string     `json:"contact_email"`
	ContactPhone  string     `json:"contact_phone"`
	Members       Records    `json:"members"`
	Highlights    Strings    `json:"highlights"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// EnsembleInput holds the fields of a new Ensemble.
type EnsembleInput struct {
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description" yaml:"description"`
	FormationYear *int    `json:"formation_year" yaml:"formation_year"`
	MusicalStyle  string  `json:"musical_style" yaml:"musical_style"`
	Vision        string  `json:"vision" yaml:"vision"`
	ContactEmail  string  `json:"contact_email" yaml:"contact_email"`
	ContactPhone  string  `json:"contact_phone" yaml:"contact_phone"`
	Members       Records `json:"members" yaml:"members"`
	Highlights    Strings `json:"highlights" yaml:"highlights"`
}

func (in EnsembleInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.FormationYear, validation.Min(1900), validation.Max(2100)),
		validation.Field(&in.ContactEmail, is.EmailFormat),
		validation.Field(&in.ContactPhone, validation.Length(0, 50)),
	)
}

// EnsemblePatch lists the Ensemble fields eligible for partial update.
type EnsemblePatch struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	FormationYear *int     `json:"formation_year"`
	MusicalStyle  *string  `json:"musical_style"`
	Vision        *string  `json:"vision"`
	ContactEmail  *string  `json:"contact_email"`
	ContactPhone  *string  `json:"contact_phone"`
	Members       *Records `json:"members"`
	Highlights    *Strings `json:"highlights"`
}

func (p EnsemblePatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&p.Description, validation.NilOrNotEmpty),
		validation.Field(&p.FormationYear, validation.Min(1900), validation.Max(2100)),
		validation.Field(&p.ContactEmail, is.EmailFormat),
		validation.Field(&p.ContactPhone, validation.Length(0, 50)),
	)
}

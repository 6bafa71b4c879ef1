package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Bio is the musician's biography. Only the first row is served.
type Bio struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	Biography    string     `json:"bio_text"`
	Education    Records    `json:"education"`
	Achievements Records    `json:"achievements"`
	CurrentRoles Records    `json:"current_roles"`
	Discography  Records    `json:"discography"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// BioInput holds the fields of a new Bio.
type BioInput struct {
	Name         string  `json:"name" yaml:"name"`
	Title        string  `json:"title" yaml:"title"`
	Biography    string  `json:"bio_text" yaml:"bio_text"`
	Education    Records `json:"education" yaml:"education"`
	Achievements Records `json:"achievements" yaml:"achievements"`
	CurrentRoles Records `json:"current_roles" yaml:"current_roles"`
	Discography  Records `json:"discography" yaml:"discography"`
}

func (in BioInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.Biography, validation.Required),
	)
}

// BioPatch lists the Bio fields eligible for partial update. Nil fields are left unchanged.
type BioPatch struct {
	Name         *string  `json:"name"`
	Title        *string  `json:"title"`
	Biography    *string  `json:"bio_text"`
	Education    *Records `json:"education"`
	Achievements *Records `json:"achievements"`
	CurrentRoles *Records `json:"current_roles"`
	Discography  *Records `json:"discography"`
}

func (p BioPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&p.Biography, validation.NilOrNotEmpty),
	)
}

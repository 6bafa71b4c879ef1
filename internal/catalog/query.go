// Package catalog answers filtered, ordered and paginated reads over the content
// store and validates writes before they reach it.
package catalog

import (
	"fmt"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/store"
)

// EventStatus selects upcoming, past or all events.
type EventStatus string

const (
	StatusUpcoming EventStatus = "upcoming"
	StatusPast     EventStatus = "past"
	StatusAll      EventStatus = "all"
)

// ParseEventStatus parses a status filter. Empty means upcoming.
func ParseEventStatus(s string) (EventStatus, error) {
	switch EventStatus(s) {
	case "", StatusUpcoming:
		return StatusUpcoming, nil
	case StatusPast:
		return StatusPast, nil
	case StatusAll:
		return StatusAll, nil
	default:
		return "", fmt.Errorf("%w: status must be one of upcoming, past, all (got %q)", apperr.ErrValidation, s)
	}
}

// filter maps a status onto the store's ordering: upcoming and all ascend by date, past descends.
func (s EventStatus) filter() store.EventFilter {
	switch s {
	case StatusPast:
		past := true
		return store.EventFilter{Past: &past, Descending: true}
	case StatusAll:
		return store.EventFilter{}
	default:
		upcoming := false
		return store.EventFilter{Past: &upcoming}
	}
}

// Limits is the pagination policy for one kind of listing.
type Limits struct {
	Default int
	Max     int
}

var (
	// ListLimits applies to video and playlist listings.
	ListLimits = Limits{Default: 20, Max: 100}
	// FeaturedLimits applies to the featured sub-views.
	FeaturedLimits = Limits{Default: 3, Max: 20}
)

// Clamp applies the policy: a non-positive limit becomes the default, a limit above the
// maximum becomes the maximum, and a negative offset becomes zero.
func (l Limits) Clamp(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = l.Default
	case limit > l.Max:
		limit = l.Max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Page is a requested window over an ordered listing.
type Page struct {
	Limit  int
	Offset int
}

// VideoQuery filters the public video listing.
type VideoQuery struct {
	Category string
	Featured *bool
	Page
}

// PlaylistQuery filters the public playlist listing.
type PlaylistQuery struct {
	Featured *bool
	Page
}

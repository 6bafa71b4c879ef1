package store

import (
	"context"

	"github.com/starford/maqam/internal/models"
)

// Kind names a seeded entity kind; the value is its table.
type Kind string

const (
	KindBio      Kind = "biography"
	KindEnsemble Kind = "ensembles"
	KindEvent    Kind = "events"
	KindVideo    Kind = "videos"
	KindPlaylist Kind = "playlists"
)

// Kinds lists every entity kind in dependency order.
var Kinds = []Kind{KindBio, KindEnsemble, KindEvent, KindVideo, KindPlaylist}

func (k Kind) valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// EventFilter narrows and orders an event listing. Events are always ordered by date;
// Descending flips the direction.
type EventFilter struct {
	Past       *bool
	Descending bool
}

// VideoFilter narrows a video listing. Limit 0 means no limit.
type VideoFilter struct {
	Category      string
	Featured      *bool
	EventID       *int64
	IncludeHidden bool
	Limit         int
	Offset        int
}

// PlaylistFilter narrows a playlist listing. Limit 0 means no limit.
type PlaylistFilter struct {
	Featured      *bool
	IncludeHidden bool
	Limit         int
	Offset        int
}

type BioRepository interface {
	FirstBio(ctx context.Context) (models.Bio, error)
	CreateBio(ctx context.Context, in models.BioInput) (models.Bio, error)
	UpdateFirstBio(ctx context.Context, p models.BioPatch) (models.Bio, error)
	DeleteBio(ctx context.Context, id int64) error
}

type EnsembleRepository interface {
	ListEnsembles(ctx context.Context) ([]models.Ensemble, error)
	FindEnsemble(ctx context.Context, id int64) (models.Ensemble, error)
	FirstEnsemble(ctx context.Context) (models.Ensemble, error)
	CreateEnsemble(ctx context.Context, in models.EnsembleInput) (models.Ensemble, error)
	UpdateEnsemble(ctx context.Context, id int64, p models.EnsemblePatch) (models.Ensemble, error)
	DeleteEnsemble(ctx context.Context, id int64) error
}

type EventRepository interface {
	ListEvents(ctx context.Context, f EventFilter) ([]models.Event, error)
	FindEvent(ctx context.Context, id int64) (models.Event, error)
	CreateEvent(ctx context.Context, in models.EventInput) (models.Event, error)
	UpdateEvent(ctx context.Context, id int64, p models.EventPatch) (models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	ReclassifyEvents(ctx context.Context, today models.Date) (ReclassifyResult, error)
	LastClassifierRun(ctx context.Context) (ClassifierRun, bool, error)
}

type VideoRepository interface {
	ListVideos(ctx context.Context, f VideoFilter) ([]models.Video, error)
	FindVideo(ctx context.Context, id int64) (models.Video, error)
	CreateVideo(ctx context.Context, in models.VideoInput) (models.Video, error)
	UpdateVideo(ctx context.Context, id int64, p models.VideoPatch) (models.Video, error)
	DeleteVideo(ctx context.Context, id int64) error
}

type PlaylistRepository interface {
	ListPlaylists(ctx context.Context, f PlaylistFilter) ([]models.Playlist, error)
	FindPlaylist(ctx context.Context, id int64) (models.Playlist, error)
	CreatePlaylist(ctx context.Context, in models.PlaylistInput) (models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id int64, p models.PlaylistPatch) (models.Playlist, error)
	DeletePlaylist(ctx context.Context, id int64) error
}

// Catalog is the full content store.
type Catalog interface {
	BioRepository
	EnsembleRepository
	EventRepository
	VideoRepository
	PlaylistRepository
	Ping(ctx context.Context) error
}

var _ Catalog = (*DB)(nil)

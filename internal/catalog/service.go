package catalog

import (
	"context"
	"fmt"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/classifier"
	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
)

// Service exposes the catalog operations used by the HTTP API and the MCP tools.
type Service struct {
	store      store.Catalog
	classifier *classifier.Classifier
}

// NewService creates a Service.
func NewService(db store.Catalog, c *classifier.Classifier) *Service {
	return &Service{store: db, classifier: c}
}

// Ready reports whether the store is reachable.
func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

type validatable interface {
	Validate() error
}

func validate(v validatable) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, err.Error())
	}
	return nil
}

// --- Bio ---

// GetBio returns the biography.
func (s *Service) GetBio(ctx context.Context) (models.Bio, error) {
	return s.store.FirstBio(ctx)
}

// CreateBio creates the biography; only one may exist.
func (s *Service) CreateBio(ctx context.Context, in models.BioInput) (models.Bio, error) {
	if err := validate(in); err != nil {
		return models.Bio{}, err
	}
	return s.store.CreateBio(ctx, in)
}

// UpdateBio partially updates the biography.
func (s *Service) UpdateBio(ctx context.Context, p models.BioPatch) (models.Bio, error) {
	if err := validate(p); err != nil {
		return models.Bio{}, err
	}
	return s.store.UpdateFirstBio(ctx, p)
}

// DeleteBio deletes the biography with the given id.
func (s *Service) DeleteBio(ctx context.Context, id int64) error {
	return s.store.DeleteBio(ctx, id)
}

// --- Ensembles ---

func (s *Service) ListEnsembles(ctx context.Context) ([]models.Ensemble, error) {
	return s.store.ListEnsembles(ctx)
}

func (s *Service) GetEnsemble(ctx context.Context, id int64) (models.Ensemble, error) {
	return s.store.FindEnsemble(ctx, id)
}

// GetMainEnsemble returns the first ensemble.
func (s *Service) GetMainEnsemble(ctx context.Context) (models.Ensemble, error) {
	return s.store.FirstEnsemble(ctx)
}

func (s *Service) CreateEnsemble(ctx context.Context, in models.EnsembleInput) (models.Ensemble, error) {
	if err := validate(in); err != nil {
		return models.Ensemble{}, err
	}
	return s.store.CreateEnsemble(ctx, in)
}

func (s *Service) UpdateEnsemble(ctx context.Context, id int64, p models.EnsemblePatch) (models.Ensemble, error) {
	if err := validate(p); err != nil {
		return models.Ensemble{}, err
	}
	return s.store.UpdateEnsemble(ctx, id, p)
}

// UpdateMainEnsemble partially updates the first ensemble.
func (s *Service) UpdateMainEnsemble(ctx context.Context, p models.EnsemblePatch) (models.Ensemble, error) {
	if err := validate(p); err != nil {
		return models.Ensemble{}, err
	}
	first, err := s.store.FirstEnsemble(ctx)
	if err != nil {
		return models.Ensemble{}, err
	}
	return s.store.UpdateEnsemble(ctx, first.ID, p)
}

func (s *Service) DeleteEnsemble(ctx context.Context, id int64) error {
	return s.store.DeleteEnsemble(ctx, id)
}

// --- Events ---

// ListEvents returns events for status. Upcoming and all ascend by date; past descends.
func (s *Service) ListEvents(ctx context.Context, status EventStatus) ([]models.Event, error) {
	if err := s.classifier.EnsureFresh(ctx); err != nil {
		return nil, fmt.Errorf("catalog: classify events: %w", err)
	}
	return s.store.ListEvents(ctx, status.filter())
}

func (s *Service) GetEvent(ctx context.Context, id int64) (models.Event, error) {
	if err := s.classifier.EnsureFresh(ctx); err != nil {
		return models.Event{}, fmt.Errorf("catalog: classify events: %w", err)
	}
	return s.store.FindEvent(ctx, id)
}

// CreateEvent creates an event. When is_past is omitted it is derived from the date.
func (s *Service) CreateEvent(ctx context.Context, in models.EventInput) (models.Event, error) {
	if err := validate(in); err != nil {
		return models.Event{}, err
	}
	if in.IsPast == nil {
		past := classifier.Classify(in.Date, s.classifier.Today())
		in.IsPast = &past
	}
	return s.store.CreateEvent(ctx, in)
}

// UpdateEvent partially updates an event. Moving the date without an explicit
// is_past re-derives it.
func (s *Service) UpdateEvent(ctx context.Context, id int64, p models.EventPatch) (models.Event, error) {
	if err := validate(p); err != nil {
		return models.Event{}, err
	}
	if p.Date != nil && p.IsPast == nil {
		past := classifier.Classify(*p.Date, s.classifier.Today())
		p.IsPast = &past
	}
	return s.store.UpdateEvent(ctx, id, p)
}

func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	return s.store.DeleteEvent(ctx, id)
}

// ReclassifyEvents runs a classifier pass for date, or for today when date is zero.
func (s *Service) ReclassifyEvents(ctx context.Context, date models.Date, trigger string) (store.ReclassifyResult, error) {
	if date.IsZero() {
		date = s.classifier.Today()
	}
	return s.classifier.Reclassify(ctx, date, trigger)
}

// --- Videos ---

// ListVideos returns visible videos matching q, clamped to ListLimits.
func (s *Service) ListVideos(ctx context.Context, q VideoQuery) ([]models.Video, error) {
	limit, offset := ListLimits.Clamp(q.Limit, q.Offset)
	return s.store.ListVideos(ctx, store.VideoFilter{
		Category: q.Category,
		Featured: q.Featured,
		Limit:    limit,
		Offset:   offset,
	})
}

// FeaturedVideos returns the top visible featured videos.
func (s *Service) FeaturedVideos(ctx context.Context, limit int) ([]models.Video, error) {
	limit, _ = FeaturedLimits.Clamp(limit, 0)
	featured := true
	return s.store.ListVideos(ctx, store.VideoFilter{Featured: &featured, Limit: limit})
}

// GetVideo returns a visible video. Hidden videos are not found.
func (s *Service) GetVideo(ctx context.Context, id int64) (models.Video, error) {
	v, err := s.store.FindVideo(ctx, id)
	if err != nil {
		return models.Video{}, err
	}
	if !v.IsVisible {
		return models.Video{}, fmt.Errorf("catalog: video %d: %w", id, apperr.ErrNotFound)
	}
	return v, nil
}

// VideosByEvent returns the visible videos linked to eventID by display order.
func (s *Service) VideosByEvent(ctx context.Context, eventID int64) ([]models.Video, error) {
	return s.store.ListVideos(ctx, store.VideoFilter{EventID: &eventID})
}

func (s *Service) CreateVideo(ctx context.Context, in models.VideoInput) (models.Video, error) {
	if err := validate(in); err != nil {
		return models.Video{}, err
	}
	return s.store.CreateVideo(ctx, in)
}

func (s *Service) UpdateVideo(ctx context.Context, id int64, p models.VideoPatch) (models.Video, error) {
	if err := validate(p); err != nil {
		return models.Video{}, err
	}
	return s.store.UpdateVideo(ctx, id, p)
}

func (s *Service) DeleteVideo(ctx context.Context, id int64) error {
	return s.store.DeleteVideo(ctx, id)
}

// --- Playlists ---

// ListPlaylists returns visible playlists matching q, clamped to ListLimits.
func (s *Service) ListPlaylists(ctx context.Context, q PlaylistQuery) ([]models.Playlist, error) {
	limit, offset := ListLimits.Clamp(q.Limit, q.Offset)
	return s.store.ListPlaylists(ctx, store.PlaylistFilter{
		Featured: q.Featured,
		Limit:    limit,
		Offset:   offset,
	})
}

// FeaturedPlaylists returns the top visible featured playlists.
func (s *Service) FeaturedPlaylists(ctx context.Context, limit int) ([]models.Playlist, error) {
	limit, _ = FeaturedLimits.Clamp(limit, 0)
	featured := true
	return s.store.ListPlaylists(ctx, store.PlaylistFilter{Featured: &featured, Limit: limit})
}

// GetPlaylist returns a visible playlist. Hidden playlists are not found.
func (s *Service) GetPlaylist(ctx context.Context, id int64) (models.Playlist, error) {
	p, err := s.store.FindPlaylist(ctx, id)
	if err != nil {
		return models.Playlist{}, err
	}
	if !p.IsVisible {
		return models.Playlist{}, fmt.Errorf("catalog: playlist %d: %w", id, apperr.ErrNotFound)
	}
	return p, nil
}

func (s *Service) CreatePlaylist(ctx context.Context, in models.PlaylistInput) (models.Playlist, error) {
	if err := validate(in); err != nil {
		return models.Playlist{}, err
	}
	return s.store.CreatePlaylist(ctx, in)
}

func (s *Service) UpdatePlaylist(ctx context.Context, id int64, p models.PlaylistPatch) (models.Playlist, error) {
	if err := validate(p); err != nil {
		return models.Playlist{}, err
	}
	return s.store.UpdatePlaylist(ctx, id, p)
}

func (s *Service) DeletePlaylist(ctx context.Context, id int64) error {
	return s.store.DeletePlaylist(ctx, id)
}

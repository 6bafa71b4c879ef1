package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/metrics"
	"github.com/starford/maqam/internal/store"
)

// Store is the part of the store the reconciler needs.
type Store interface {
	InTx(ctx context.Context, fn func(*store.Tx) error) error
}

// Options controls a reconciliation run.
type Options struct {
	// Reset deletes every row of every kind before seeding.
	Reset bool
}

// KindResult describes what happened to one kind.
type KindResult struct {
	Kind     store.Kind `json:"kind"`
	Existing int        `json:"existing"`
	Inserted int        `json:"inserted"`
	Skipped  bool       `json:"skipped"`
	Error    string     `json:"error,omitempty"`
}

// Report summarises a reconciliation run.
type Report struct {
	Checksum string               `json:"checksum"`
	Deleted  map[store.Kind]int64 `json:"deleted,omitempty"`
	Kinds    []KindResult         `json:"kinds"`
}

// Inserted returns the total number of rows written.
func (r Report) Inserted() int {
	n := 0
	for _, k := range r.Kinds {
		n += k.Inserted
	}
	return n
}

// SeedError reports a kind whose seeding was rolled back.
type SeedError struct {
	Kind store.Kind
	Err  error
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seed %s: %v", e.Kind, e.Err)
}

func (e *SeedError) Unwrap() error { return e.Err }

// Reconciler brings an empty store up to the reference dataset.
type Reconciler struct {
	store   Store
	dataset *Dataset
	logger  *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) { r.logger = l }
}

// New returns a Reconciler that seeds ds into s.
func New(s Store, ds *Dataset, opts ...Option) *Reconciler {
	r := &Reconciler{store: s, dataset: ds, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run seeds every kind that has no rows yet. Each kind is written in its own
// transaction, so a failing kind is rolled back without affecting the others.
// The returned error joins one *SeedError per failed kind; the report is valid
// either way.
func (r *Reconciler) Run(ctx context.Context, opts Options) (Report, error) {
	report := Report{Checksum: r.dataset.Checksum}

	if opts.Reset {
		deleted, err := r.reset(ctx)
		if err != nil {
			return report, fmt.Errorf("seed: reset: %w", err)
		}
		report.Deleted = deleted
		r.logger.Warn("seed reset: all content deleted", "deleted", deleted)
	}

	var errs []error
	for _, kind := range store.Kinds {
		res, err := r.seedKind(ctx, kind)
		metrics.RecordSeed(string(kind), res.Inserted, err)
		if err != nil {
			res.Error = err.Error()
			errs = append(errs, &SeedError{Kind: kind, Err: err})
			r.logger.Error("seed kind failed", "kind", kind, "error", err)
		} else if res.Skipped {
			r.logger.Info("seed kind skipped", "kind", kind, "existing", res.Existing)
		} else {
			r.logger.Info("seed kind inserted", "kind", kind, "rows", res.Inserted)
		}
		report.Kinds = append(report.Kinds, res)
	}
	return report, errors.Join(errs...)
}

// reset removes all content, dependents first.
func (r *Reconciler) reset(ctx context.Context) (map[store.Kind]int64, error) {
	deleted := make(map[store.Kind]int64, len(store.Kinds))
	kinds := slices.Clone(store.Kinds)
	slices.Reverse(kinds)
	err := r.store.InTx(ctx, func(tx *store.Tx) error {
		for _, kind := range kinds {
			n, err := tx.DeleteAll(ctx, kind)
			if err != nil {
				return err
			}
			deleted[kind] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *Reconciler) seedKind(ctx context.Context, kind store.Kind) (KindResult, error) {
	res := KindResult{Kind: kind}
	err := r.store.InTx(ctx, func(tx *store.Tx) error {
		n, err := tx.Count(ctx, kind)
		if err != nil {
			return err
		}
		if n > 0 {
			res.Existing = n
			res.Skipped = true
			return nil
		}
		inserted, err := r.insert(ctx, tx, kind)
		res.Inserted = inserted
		return err
	})
	if err != nil {
		res.Inserted = 0
	}
	return res, err
}

type validatable interface {
	Validate() error
}

func (r *Reconciler) insert(ctx context.Context, tx *store.Tx, kind store.Kind) (int, error) {
	ds := r.dataset
	switch kind {
	case store.KindBio:
		if ds.Bio == nil {
			return 0, nil
		}
		if err := check(0, *ds.Bio); err != nil {
			return 0, err
		}
		if _, err := tx.InsertBio(ctx, *ds.Bio); err != nil {
			return 0, err
		}
		return 1, nil
	case store.KindEnsemble:
		for i, in := range ds.Ensembles {
			if err := check(i, in); err != nil {
				return i, err
			}
			if _, err := tx.InsertEnsemble(ctx, in); err != nil {
				return i, fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return len(ds.Ensembles), nil
	case store.KindEvent:
		for i, in := range ds.Events {
			if err := check(i, in); err != nil {
				return i, err
			}
			if _, err := tx.InsertEvent(ctx, in); err != nil {
				return i, fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return len(ds.Events), nil
	case store.KindVideo:
		for i, in := range ds.Videos {
			if err := check(i, in); err != nil {
				return i, err
			}
			if _, err := tx.InsertVideo(ctx, in); err != nil {
				return i, fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return len(ds.Videos), nil
	case store.KindPlaylist:
		for i, in := range ds.Playlists {
			if err := check(i, in); err != nil {
				return i, err
			}
			if _, err := tx.InsertPlaylist(ctx, in); err != nil {
				return i, fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return len(ds.Playlists), nil
	default:
		return 0, fmt.Errorf("unknown kind %q", kind)
	}
}

func check(i int, v validatable) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("entry %d: %w: %v", i, apperr.ErrValidation, err)
	}
	return nil
}

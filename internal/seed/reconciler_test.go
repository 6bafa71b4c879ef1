package seed

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
	"github.com/starford/maqam/internal/testutil"
)

func counts(t *testing.T, db *store.DB) map[store.Kind]int {
	t.Helper()
	out := make(map[store.Kind]int)
	err := db.InTx(context.Background(), func(tx *store.Tx) error {
		for _, kind := range store.Kinds {
			n, err := tx.Count(context.Background(), kind)
			if err != nil {
				return err
			}
			out[kind] = n
		}
		return nil
	})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return out
}

func smallDataset() *Dataset {
	return &Dataset{
		Bio: &models.BioInput{Name: "Abathar Kmash", Title: "Oud Player", Biography: "Born in As-Suwaida."},
		Ensembles: []models.EnsembleInput{
			{Name: "Ogaro Ensemble", Description: "Founded in Munich."},
		},
		Events: []models.EventInput{
			testutil.Event("Ogaro Ensemble", models.NewDate(2026, 1, 22)),
			testutil.Event("Met in Munich", models.NewDate(2026, 10, 17)),
		},
		Videos: []models.VideoInput{
			testutil.Video("NzOMiZBg1kY"),
			testutil.Video("t1akF64vntQ"),
		},
		Playlists: []models.PlaylistInput{
			testutil.Playlist("PL-live"),
		},
	}
}

func TestBuiltinDataset(t *testing.T) {
	ds, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if ds.Bio == nil || ds.Bio.Name != "Abathar Kmash" {
		t.Fatalf("unexpected bio: %+v", ds.Bio)
	}
	if len(ds.Ensembles) != 1 || len(ds.Ensembles[0].Members) != 5 {
		t.Errorf("expected one ensemble with 5 members, got %+v", ds.Ensembles)
	}
	if len(ds.Events) != 10 {
		t.Errorf("expected 10 events, got %d", len(ds.Events))
	}
	if len(ds.Videos) != 28 {
		t.Errorf("expected 28 videos, got %d", len(ds.Videos))
	}
	if ds.Checksum == "" {
		t.Error("expected checksum")
	}

	seen := make(map[string]bool)
	for i, v := range ds.Videos {
		if err := v.Validate(); err != nil {
			t.Errorf("video %d invalid: %v", i, err)
		}
		if seen[v.YouTubeID] {
			t.Errorf("duplicate youtube_id %s", v.YouTubeID)
		}
		seen[v.YouTubeID] = true
	}
	for i, e := range ds.Events {
		if err := e.Validate(); err != nil {
			t.Errorf("event %d invalid: %v", i, err)
		}
	}
	if got := ds.Events[0].Date.String(); got != "2026-01-22" {
		t.Errorf("first event date = %s", got)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := testutil.TestDB(t)
	ds := smallDataset()
	r := New(db, ds)

	report, err := r.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if report.Inserted() != 7 {
		t.Errorf("expected 7 rows inserted, got %d", report.Inserted())
	}
	first := counts(t, db)

	report, err = r.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Inserted() != 0 {
		t.Errorf("second run inserted %d rows", report.Inserted())
	}
	for _, k := range report.Kinds {
		if !k.Skipped {
			t.Errorf("kind %s not skipped on second run", k.Kind)
		}
	}
	second := counts(t, db)
	for kind, n := range ds.Size() {
		if first[kind] != n || second[kind] != n {
			t.Errorf("%s: want %d rows, got %d then %d", kind, n, first[kind], second[kind])
		}
	}
}

func TestRunSkipsPopulatedKind(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	if _, err := db.CreateVideo(ctx, testutil.Video("existing001")); err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}

	if _, err := New(db, smallDataset()).Run(ctx, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := counts(t, db)
	if got[store.KindVideo] != 1 {
		t.Errorf("videos: want the single existing row, got %d", got[store.KindVideo])
	}
	if got[store.KindEvent] != 2 {
		t.Errorf("events: want 2, got %d", got[store.KindEvent])
	}
}

func TestRunRollsBackFailingKind(t *testing.T) {
	db := testutil.TestDB(t)
	ds := smallDataset()
	ds.Videos = append(ds.Videos, testutil.Video("NzOMiZBg1kY"))

	report, err := New(db, ds).Run(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected error for duplicate youtube_id")
	}
	var kerr *SeedError
	if !errors.As(err, &kerr) || kerr.Kind != store.KindVideo {
		t.Fatalf("expected SeedError for videos, got %v", err)
	}
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	got := counts(t, db)
	if got[store.KindVideo] != 0 {
		t.Errorf("videos should be rolled back, got %d rows", got[store.KindVideo])
	}
	if got[store.KindEvent] != 2 || got[store.KindPlaylist] != 1 || got[store.KindBio] != 1 {
		t.Errorf("other kinds should be seeded, got %v", got)
	}
	for _, k := range report.Kinds {
		if k.Kind == store.KindVideo && (k.Error == "" || k.Inserted != 0) {
			t.Errorf("unexpected video result: %+v", k)
		}
	}
}

func TestRunRejectsInvalidEntry(t *testing.T) {
	db := testutil.TestDB(t)
	ds := smallDataset()
	ds.Events = append(ds.Events, models.EventInput{Title: "no date"})

	_, err := New(db, ds).Run(context.Background(), Options{})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := counts(t, db); got[store.KindEvent] != 0 {
		t.Errorf("events should be rolled back, got %d", got[store.KindEvent])
	}
}

func TestRunReset(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	ds := smallDataset()
	r := New(db, ds)

	if _, err := r.Run(ctx, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	extra, err := db.CreateEvent(ctx, testutil.Event("Extra", models.NewDate(2026, 12, 1)))
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	linked := testutil.Video("linked00001")
	linked.EventID = &extra.ID
	if _, err := db.CreateVideo(ctx, linked); err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}

	report, err := r.Run(ctx, Options{Reset: true})
	if err != nil {
		t.Fatalf("Run reset: %v", err)
	}
	if report.Deleted[store.KindEvent] != 3 || report.Deleted[store.KindVideo] != 3 {
		t.Errorf("unexpected deleted counts: %v", report.Deleted)
	}
	got := counts(t, db)
	for kind, n := range ds.Size() {
		if got[kind] != n {
			t.Errorf("%s: want %d rows after reset, got %d", kind, n, got[kind])
		}
	}
}

func TestLoadFile(t *testing.T) {
	ds, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile empty: %v", err)
	}
	if len(ds.Videos) == 0 {
		t.Error("empty path should load the builtin dataset")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

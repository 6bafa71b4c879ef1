package classifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
	"github.com/starford/maqam/internal/testutil"
)

type fakeRepo struct {
	calls []models.Date
	err   error
}

func (f *fakeRepo) ReclassifyEvents(_ context.Context, today models.Date) (store.ReclassifyResult, error) {
	f.calls = append(f.calls, today)
	return store.ReclassifyResult{}, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyBoundary(t *testing.T) {
	today := models.NewDate(2026, time.October, 18)
	if Classify(today, today) {
		t.Error("event dated today classified as past")
	}
	if !Classify(today.AddDays(-1), today) {
		t.Error("yesterday not past")
	}
	if Classify(today.AddDays(1), today) {
		t.Error("tomorrow classified as past")
	}
}

func TestEnsureFreshRunsOncePerDay(t *testing.T) {
	repo := &fakeRepo{}
	now := time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC)
	c := New(repo, WithClock(func() time.Time { return now }), WithLogger(quietLogger()))
	ctx := context.Background()

	for range 3 {
		if err := c.EnsureFresh(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if len(repo.calls) != 1 {
		t.Fatalf("passes = %d, want 1", len(repo.calls))
	}

	now = now.Add(20 * time.Hour)
	if err := c.EnsureFresh(ctx); err != nil {
		t.Fatal(err)
	}
	if len(repo.calls) != 2 || repo.calls[1].String() != "2026-10-19" {
		t.Fatalf("calls = %v", repo.calls)
	}
}

func TestEnsureFreshRetriesAfterFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	c := New(repo, WithLogger(quietLogger()))
	ctx := context.Background()

	if err := c.EnsureFresh(ctx); err == nil {
		t.Fatal("expected error")
	}
	if !c.LastPass().IsZero() {
		t.Error("failed pass recorded as applied")
	}
	repo.err = nil
	if err := c.EnsureFresh(ctx); err != nil {
		t.Fatal(err)
	}
	if len(repo.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(repo.calls))
	}
}

func TestReclassifyAgainstStore(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	today := models.NewDate(2026, time.October, 18)

	ev, err := db.CreateEvent(ctx, testutil.Event("Gasteig", today.AddDays(365)))
	if err != nil {
		t.Fatal(err)
	}
	c := New(db, WithLogger(quietLogger()))

	res, err := c.Reclassify(ctx, today, TriggerAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if res.MarkedPast != 0 {
		t.Errorf("marked past = %d, want 0", res.MarkedPast)
	}

	res, err = c.Reclassify(ctx, today.AddDays(366), TriggerAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if res.MarkedPast != 1 {
		t.Errorf("marked past = %d, want 1", res.MarkedPast)
	}
	got, err := db.FindEvent(ctx, ev.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsPast {
		t.Error("event not past after its date")
	}
}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	c := New(&fakeRepo{}, WithLogger(quietLogger()))
	if _, err := NewScheduler(c, "not a schedule"); err == nil {
		t.Error("expected error for invalid schedule")
	}
	if _, err := NewScheduler(c, "@hourly"); err != nil {
		t.Errorf("@hourly: %v", err)
	}
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	c := New(&fakeRepo{}, WithLogger(quietLogger()))
	s, err := NewScheduler(c, "@every 1h")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestPassForOtherDateInvalidatesFreshness(t *testing.T) {
	repo := &fakeRepo{}
	now := time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC)
	c := New(repo, WithClock(func() time.Time { return now }), WithLogger(quietLogger()))
	ctx := context.Background()

	if err := c.EnsureFresh(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Reclassify(ctx, models.NewDate(2027, time.January, 1), TriggerAdmin); err != nil {
		t.Fatal(err)
	}
	if err := c.EnsureFresh(ctx); err != nil {
		t.Fatal(err)
	}
	if len(repo.calls) != 3 || repo.calls[2].String() != "2026-10-18" {
		t.Errorf("calls = %v, want a fresh pass for today after the admin pass", repo.calls)
	}
}

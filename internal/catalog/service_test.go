package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/classifier"
	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
	"github.com/starford/maqam/internal/testutil"
)

type env struct {
	svc *Service
	db  *store.DB
	now *time.Time
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := testutil.TestDB(t)
	now := time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)
	c := classifier.New(db,
		classifier.WithClock(func() time.Time { return now }),
		classifier.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return env{svc: NewService(db, c), db: db, now: &now}
}

func TestLimitsClamp(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 20, 0},
		{-5, -1, 20, 0},
		{1, 3, 1, 3},
		{100, 0, 100, 0},
		{101, 0, 100, 0},
		{5000, 40, 100, 40},
	}
	for _, tt := range tests {
		l, o := ListLimits.Clamp(tt.limit, tt.offset)
		if l != tt.wantLimit || o != tt.wantOffset {
			t.Errorf("Clamp(%d, %d) = (%d, %d), want (%d, %d)", tt.limit, tt.offset, l, o, tt.wantLimit, tt.wantOffset)
		}
	}
	if l, _ := FeaturedLimits.Clamp(0, 0); l != 3 {
		t.Errorf("featured default = %d, want 3", l)
	}
	if l, _ := FeaturedLimits.Clamp(50, 0); l != 20 {
		t.Errorf("featured max = %d, want 20", l)
	}
}

func TestParseEventStatus(t *testing.T) {
	for in, want := range map[string]EventStatus{"": StatusUpcoming, "upcoming": StatusUpcoming, "past": StatusPast, "all": StatusAll} {
		got, err := ParseEventStatus(in)
		if err != nil || got != want {
			t.Errorf("ParseEventStatus(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEventStatus("soon"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestEventMovesFromUpcomingToPast(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	today := models.DateOf(*e.now)

	ev, err := e.svc.CreateEvent(ctx, testutil.Event("Gasteig", today.AddDays(365)))
	if err != nil {
		t.Fatal(err)
	}
	if ev.IsPast {
		t.Fatal("future event created as past")
	}

	upcoming, err := e.svc.ListEvents(ctx, StatusUpcoming)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != ev.ID {
		t.Fatalf("upcoming = %+v", upcoming)
	}

	if _, err := e.svc.ReclassifyEvents(ctx, today.AddDays(366), classifier.TriggerAdmin); err != nil {
		t.Fatal(err)
	}
	// Reads classify against today again, so pin the clock after the event.
	*e.now = e.now.AddDate(1, 0, 1)

	past, err := e.svc.ListEvents(ctx, StatusPast)
	if err != nil {
		t.Fatal(err)
	}
	if len(past) != 1 || past[0].ID != ev.ID {
		t.Fatalf("past = %+v", past)
	}
	upcoming, err = e.svc.ListEvents(ctx, StatusUpcoming)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 0 {
		t.Errorf("upcoming still has %d events", len(upcoming))
	}
}

func TestListEventsReclassifiesStaleRows(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	today := models.DateOf(*e.now)

	stale := false
	if _, err := e.db.CreateEvent(ctx, models.EventInput{Title: "last week", Date: today.AddDays(-7), IsPast: &stale}); err != nil {
		t.Fatal(err)
	}
	wrong := true
	if _, err := e.db.CreateEvent(ctx, models.EventInput{Title: "today", Date: today, IsPast: &wrong}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.db.CreateEvent(ctx, models.EventInput{Title: "next month", Date: today.AddDays(30), IsPast: &stale}); err != nil {
		t.Fatal(err)
	}

	upcoming, err := e.svc.ListEvents(ctx, StatusUpcoming)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 2 || upcoming[0].Title != "today" || upcoming[1].Title != "next month" {
		t.Errorf("upcoming = %+v", upcoming)
	}
	past, err := e.svc.ListEvents(ctx, StatusPast)
	if err != nil {
		t.Fatal(err)
	}
	if len(past) != 1 || past[0].Title != "last week" {
		t.Errorf("past = %+v", past)
	}
	all, err := e.svc.ListEvents(ctx, StatusAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Title != "last week" {
		t.Errorf("all = %+v", all)
	}
}

func TestUpdateEventRederivesIsPast(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	today := models.DateOf(*e.now)

	ev, err := e.svc.CreateEvent(ctx, testutil.Event("Graz", today.AddDays(10)))
	if err != nil {
		t.Fatal(err)
	}
	moved := today.AddDays(-2)
	got, err := e.svc.UpdateEvent(ctx, ev.ID, models.EventPatch{Date: &moved})
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsPast || got.Venue != "Gasteig HP8" {
		t.Errorf("updated event = %+v", got)
	}
}

func TestVideoTieBreakByPublishedDate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a := testutil.Video("january")
	a.DisplayOrder = 5
	a.PublishedDate = models.NewDate(2024, time.January, 1)
	b := testutil.Video("june")
	b.DisplayOrder = 5
	b.PublishedDate = models.NewDate(2024, time.June, 1)
	for _, in := range []models.VideoInput{a, b} {
		if _, err := e.svc.CreateVideo(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	got, err := e.svc.ListVideos(ctx, VideoQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].YouTubeID != "june" {
		t.Errorf("order = %v", got)
	}
}

func TestHiddenItemsAreNotFound(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	hiddenVideo := testutil.Video("secret")
	hiddenVideo.IsFeatured = true
	hiddenVideo.IsVisible = testutil.Ptr(false)
	v, err := e.svc.CreateVideo(ctx, hiddenVideo)
	if err != nil {
		t.Fatal(err)
	}
	hiddenPlaylist := testutil.Playlist("PLsecret")
	hiddenPlaylist.IsFeatured = true
	hiddenPlaylist.IsVisible = testutil.Ptr(false)
	p, err := e.svc.CreatePlaylist(ctx, hiddenPlaylist)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.svc.GetVideo(ctx, v.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetVideo err = %v, want ErrNotFound", err)
	}
	if _, err := e.svc.GetPlaylist(ctx, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetPlaylist err = %v, want ErrNotFound", err)
	}
	videos, _ := e.svc.ListVideos(ctx, VideoQuery{Featured: testutil.Ptr(true)})
	featuredVideos, _ := e.svc.FeaturedVideos(ctx, 0)
	playlists, _ := e.svc.ListPlaylists(ctx, PlaylistQuery{})
	featuredPlaylists, _ := e.svc.FeaturedPlaylists(ctx, 0)
	if len(videos)+len(featuredVideos)+len(playlists)+len(featuredPlaylists) != 0 {
		t.Error("hidden rows leaked into a public listing")
	}

	// Admin updates still reach hidden rows.
	if _, err := e.svc.UpdateVideo(ctx, v.ID, models.VideoPatch{IsVisible: testutil.Ptr(true)}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.svc.GetVideo(ctx, v.ID); err != nil {
		t.Errorf("visible again: %v", err)
	}
}

func TestFeaturedVideosLimit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		in := testutil.Video(id)
		in.IsFeatured = true
		in.DisplayOrder = i
		if _, err := e.svc.CreateVideo(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
	got, err := e.svc.FeaturedVideos(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].YouTubeID != "a" {
		t.Errorf("featured = %+v", got)
	}
}

func TestVideosByEventExcludesHidden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ev, err := e.svc.CreateEvent(ctx, testutil.Event("Kempten", models.NewDate(2026, time.January, 22)))
	if err != nil {
		t.Fatal(err)
	}
	shown := testutil.Video("shown")
	shown.EventID = &ev.ID
	hidden := testutil.Video("hidden")
	hidden.EventID = &ev.ID
	hidden.IsVisible = testutil.Ptr(false)
	for _, in := range []models.VideoInput{shown, hidden} {
		if _, err := e.svc.CreateVideo(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
	got, err := e.svc.VideosByEvent(ctx, ev.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].YouTubeID != "shown" {
		t.Errorf("by event = %+v", got)
	}
}

func TestValidationErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.svc.CreateEvent(ctx, models.EventInput{Title: "no date"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("event without date err = %v", err)
	}
	bad := testutil.Video("x")
	bad.YouTubeURL = "not a url"
	if _, err := e.svc.CreateVideo(ctx, bad); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad url err = %v", err)
	}
	year := 1850
	if _, err := e.svc.CreateEnsemble(ctx, models.EnsembleInput{Name: "Old", Description: "d", FormationYear: &year}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("formation year err = %v", err)
	}
	pl := testutil.Playlist("PL1")
	pl.VideoCount = testutil.Ptr(-1)
	if _, err := e.svc.CreatePlaylist(ctx, pl); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("video count err = %v", err)
	}
	if _, err := e.svc.UpdateBio(ctx, models.BioPatch{Name: testutil.Ptr("")}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty bio name err = %v", err)
	}
}

func TestMainEnsemble(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	if _, err := e.svc.GetMainEnsemble(ctx); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	first, err := e.svc.CreateEnsemble(ctx, models.EnsembleInput{Name: "Ogaro Ensemble", Description: "quintet"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.svc.CreateEnsemble(ctx, models.EnsembleInput{Name: "Duo", Description: "duo"}); err != nil {
		t.Fatal(err)
	}
	got, err := e.svc.UpdateMainEnsemble(ctx, models.EnsemblePatch{Vision: testutil.Ptr("bridges")})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != first.ID || got.Vision != "bridges" {
		t.Errorf("main ensemble = %+v", got)
	}
}

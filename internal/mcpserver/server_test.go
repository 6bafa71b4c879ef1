package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/maqam/internal/catalog"
	"github.com/starford/maqam/internal/classifier"
	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
	"github.com/starford/maqam/internal/testutil"
)

func testServer(t *testing.T) (*Server, *store.DB) {
	t.Helper()
	db := testutil.TestDB(t)
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
	c := classifier.New(db,
		classifier.WithClock(func() time.Time { return now }),
		classifier.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return New(catalog.NewService(db, c), "test"), db
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "get_bio":
		result, err = srv.getBio(ctx, req)
	case "list_events":
		result, err = srv.listEvents(ctx, req)
	case "list_videos":
		result, err = srv.listVideos(ctx, req)
	case "list_videos_by_event":
		result, err = srv.listVideosByEvent(ctx, req)
	case "list_playlists":
		result, err = srv.listPlaylists(ctx, req)
	case "reclassify_events":
		result, err = srv.reclassifyEvents(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestGetBio(t *testing.T) {
	srv, db := testServer(t)

	r := callTool(t, srv, "get_bio", nil)
	if !r.IsError || resultText(r) != "not found" {
		t.Errorf("missing bio = %q (error %v)", resultText(r), r.IsError)
	}

	_, err := db.CreateBio(context.Background(), models.BioInput{Name: "Abathar Kmash", Title: "Oud Player", Biography: "Born in 1987."})
	if err != nil {
		t.Fatalf("CreateBio: %v", err)
	}
	r = callTool(t, srv, "get_bio", nil)
	var bio models.Bio
	if err := json.Unmarshal([]byte(resultText(r)), &bio); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bio.Name != "Abathar Kmash" {
		t.Errorf("name = %q", bio.Name)
	}
}

func TestListEventsByStatus(t *testing.T) {
	srv, db := testServer(t)
	ctx := context.Background()
	for _, in := range []models.EventInput{
		testutil.Event("Graz", models.NewDate(2026, 8, 1)),
		testutil.Event("Kitzingen", models.NewDate(2026, 10, 17)),
		testutil.Event("Munich", models.NewDate(2026, 12, 5)),
	} {
		if _, err := db.CreateEvent(ctx, in); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	var past []models.Event
	if err := json.Unmarshal([]byte(resultText(callTool(t, srv, "list_events", map[string]interface{}{"status": "past"}))), &past); err != nil {
		t.Fatal(err)
	}
	if len(past) != 2 || past[0].Title != "Kitzingen" {
		t.Errorf("past = %+v", past)
	}

	var upcoming []models.Event
	if err := json.Unmarshal([]byte(resultText(callTool(t, srv, "list_events", nil))), &upcoming); err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 1 || upcoming[0].Title != "Munich" {
		t.Errorf("upcoming = %+v", upcoming)
	}

	if r := callTool(t, srv, "list_events", map[string]interface{}{"status": "later"}); !r.IsError {
		t.Error("expected error for unknown status")
	}
}

func TestListVideosFilters(t *testing.T) {
	srv, db := testServer(t)
	ctx := context.Background()
	for i, id := range []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"} {
		in := testutil.Video(id)
		in.DisplayOrder = i
		in.IsFeatured = i == 1
		if _, err := db.CreateVideo(ctx, in); err != nil {
			t.Fatalf("CreateVideo: %v", err)
		}
	}

	var all []models.Video
	if err := json.Unmarshal([]byte(resultText(callTool(t, srv, "list_videos", map[string]interface{}{"limit": float64(2)}))), &all); err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].YouTubeID != "aaaaaaaaaaa" {
		t.Errorf("page = %+v", all)
	}

	var notFeatured []models.Video
	if err := json.Unmarshal([]byte(resultText(callTool(t, srv, "list_videos", map[string]interface{}{"featured": false}))), &notFeatured); err != nil {
		t.Fatal(err)
	}
	if len(notFeatured) != 2 {
		t.Errorf("featured=false returned %d videos, want 2", len(notFeatured))
	}
}

func TestListVideosByEvent(t *testing.T) {
	srv, db := testServer(t)
	ctx := context.Background()
	ev, err := db.CreateEvent(ctx, testutil.Event("Freiburg", models.NewDate(2024, 6, 15)))
	if err != nil {
		t.Fatal(err)
	}
	in := testutil.Video("NzOMiZBg1kY")
	in.EventID = &ev.ID
	if _, err := db.CreateVideo(ctx, in); err != nil {
		t.Fatal(err)
	}

	var videos []models.Video
	r := callTool(t, srv, "list_videos_by_event", map[string]interface{}{"event_id": float64(ev.ID)})
	if err := json.Unmarshal([]byte(resultText(r)), &videos); err != nil {
		t.Fatal(err)
	}
	if len(videos) != 1 {
		t.Errorf("by event = %+v", videos)
	}

	if r := callTool(t, srv, "list_videos_by_event", map[string]interface{}{}); !r.IsError {
		t.Error("expected error without event_id")
	}
}

func TestListPlaylists(t *testing.T) {
	srv, db := testServer(t)
	if _, err := db.CreatePlaylist(context.Background(), testutil.Playlist("PLconcerts")); err != nil {
		t.Fatal(err)
	}
	var playlists []models.Playlist
	if err := json.Unmarshal([]byte(resultText(callTool(t, srv, "list_playlists", nil))), &playlists); err != nil {
		t.Fatal(err)
	}
	if len(playlists) != 1 || playlists[0].PlaylistID != "PLconcerts" {
		t.Errorf("playlists = %+v", playlists)
	}
}

func TestReclassifyEvents(t *testing.T) {
	srv, db := testServer(t)
	if _, err := db.CreateEvent(context.Background(), testutil.Event("Concert", models.NewDate(2026, 10, 20))); err != nil {
		t.Fatal(err)
	}

	var res store.ReclassifyResult
	r := callTool(t, srv, "reclassify_events", map[string]interface{}{"date": "2026-10-21"})
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if res.MarkedPast != 1 || res.MarkedUpcoming != 0 {
		t.Errorf("result = %+v", res)
	}

	r = callTool(t, srv, "reclassify_events", map[string]interface{}{"date": "2026-10-21"})
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if res.MarkedPast != 0 || res.MarkedUpcoming != 0 {
		t.Errorf("second pass moved events: %+v", res)
	}

	if r := callTool(t, srv, "reclassify_events", map[string]interface{}{"date": "21.10.2026"}); !r.IsError {
		t.Error("expected error for malformed date")
	}
}

func TestCatalogRulesResource(t *testing.T) {
	srv, _ := testServer(t)
	contents, err := srv.readCatalogRules(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != rulesURI || tc.Text != CatalogRules {
		t.Errorf("unexpected resource: %+v", contents[0])
	}
}

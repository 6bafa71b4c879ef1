// Package testutil provides shared test helpers for setting up content stores.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
)

// TestDB creates a temporary SQLite content store that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "maqam-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() {
		os.Remove(dbFile.Name())
		os.Remove(dbFile.Name() + "-wal")
		os.Remove(dbFile.Name() + "-shm")
	})

	db, err := store.Open(context.Background(), dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Clock returns a monotonically advancing clock starting at start, one second per call.
func Clock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Video returns a valid video input with the given YouTube id.
func Video(youtubeID string) models.VideoInput {
	return models.VideoInput{
		Title:      "Video " + youtubeID,
		YouTubeID:  youtubeID,
		YouTubeURL: "https://www.youtube.com/watch?v=" + youtubeID,
		Category:   "concert",
	}
}

// Playlist returns a valid playlist input with the given YouTube playlist id.
func Playlist(playlistID string) models.PlaylistInput {
	return models.PlaylistInput{
		Title:       "Playlist " + playlistID,
		PlaylistID:  playlistID,
		PlaylistURL: "https://www.youtube.com/playlist?list=" + playlistID,
	}
}

// Event returns a valid event input on the given date.
func Event(title string, date models.Date) models.EventInput {
	return models.EventInput{
		Title: title,
		Date:  date,
		Venue: "Gasteig HP8",
	}
}

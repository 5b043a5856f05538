// internal/persist/testutil_test.go
package persist

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/vmunix/medialog/internal/library"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// sampleSnapshot returns a snapshot touching every persisted field.
func sampleSnapshot() library.Snapshot {
	rating := 4
	return library.Snapshot{
		Items: []*library.MediaItem{
			{
				ID: "a", Title: "Heat", Type: library.TypeMovie, Year: 1995,
				Poster: "poster.jpg", Rating: &rating, Watched: true,
				Description: "Heist thriller", Genres: []string{"Crime", "Drama"},
				Director: "Michael Mann", RelatedMedia: []string{"b"},
			},
			{
				ID: "b", Title: "The Wire", Type: library.TypeTVShow, Year: 2002,
				Description: "Baltimore institutions", Genres: []string{},
				RelatedMedia: []string{},
			},
		},
		Collections: []*library.Collection{
			{ID: "c1", Name: "Crime", MediaIDs: []string{"a", "b"}, Image: "cover.jpg"},
			{ID: "c2", Name: "Empty", MediaIDs: []string{}},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

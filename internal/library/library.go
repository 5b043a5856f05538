// Package library manages the media catalog: items, collections, watch
// status, ratings, and the relationships between titles.
package library

import (
	"context"
	"time"
)

// MediaType distinguishes movies from TV shows.
type MediaType string

const (
	TypeMovie  MediaType = "movie"
	TypeTVShow MediaType = "tvshow"
)

// Valid reports whether t is a known media type.
func (t MediaType) Valid() bool {
	return t == TypeMovie || t == TypeTVShow
}

// Year bounds enforced at creation time, not retroactively.
const MinYear = 1900

// MaxYear returns the largest year accepted for new items.
func MaxYear() int {
	return time.Now().Year() + 5
}

// MediaItem is a single movie or TV show record.
type MediaItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Type         MediaType `json:"type"`
	Year         int       `json:"year"`
	Poster       string    `json:"poster"`
	Rating       *int      `json:"rating,omitempty"` // 1-5
	Watched      bool      `json:"watched"`
	Description  string    `json:"description"`
	Genres       []string  `json:"genres"`
	Director     string    `json:"director,omitempty"`
	RelatedMedia []string  `json:"relatedMedia"`
}

// Clone returns a deep copy of the item.
func (m *MediaItem) Clone() *MediaItem {
	c := *m
	if m.Rating != nil {
		r := *m.Rating
		c.Rating = &r
	}
	c.Genres = append([]string(nil), m.Genres...)
	c.RelatedMedia = append([]string(nil), m.RelatedMedia...)
	return &c
}

// Collection is a named, user-defined grouping of media ids.
type Collection struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	MediaIDs []string `json:"mediaIds"`
	Image    string   `json:"image,omitempty"`
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	out := *c
	out.MediaIDs = append([]string(nil), c.MediaIDs...)
	return &out
}

// CollectionUpdate carries partial collection fields for UpdateCollection.
// Nil fields are left unchanged.
type CollectionUpdate struct {
	Name  *string
	Image *string
}

// Snapshot is the full durable state handed to a Provider.
type Snapshot struct {
	Items       []*MediaItem  `json:"items"`
	Collections []*Collection `json:"collections"`
}

// Provider durably stores library snapshots. Implementations may be
// synchronous (a local file) or remote; the store treats every Save as
// best-effort and never rolls back in-memory state on failure.
type Provider interface {
	// Load returns the last saved snapshot. ok is false when no prior
	// state exists, in which case the caller seeds default data.
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)

	// Save persists the snapshot, replacing any previous state.
	Save(ctx context.Context, snap Snapshot) error
}

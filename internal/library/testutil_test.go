// internal/library/testutil_test.go
package library

import (
	"context"
	"fmt"
	"testing"

	"github.com/vmunix/medialog/internal/notify"
)

// fakeProvider records Save calls and serves a canned Load result.
type fakeProvider struct {
	snap    Snapshot
	ok      bool
	loadErr error
	saveErr error
	saves   int
}

func (p *fakeProvider) Load(_ context.Context) (Snapshot, bool, error) {
	return p.snap, p.ok, p.loadErr
}

func (p *fakeProvider) Save(_ context.Context, snap Snapshot) error {
	p.saves++
	if p.saveErr != nil {
		return p.saveErr
	}
	p.snap = snap
	p.ok = true
	return nil
}

func newTestStore(t *testing.T) (*Store, *fakeProvider, *notify.Recorder) {
	t.Helper()
	provider := &fakeProvider{}
	rec := &notify.Recorder{}
	return NewStore(provider, rec, nil), provider, rec
}

func movie(id, title string, year int) *MediaItem {
	return &MediaItem{
		ID:          id,
		Title:       title,
		Type:        TypeMovie,
		Year:        year,
		Description: title,
		Genres:      []string{},
	}
}

func show(id, title string, year int) *MediaItem {
	m := movie(id, title, year)
	m.Type = TypeTVShow
	return m
}

func mustAdd(t *testing.T, s *Store, item *MediaItem) *MediaItem {
	t.Helper()
	added, err := s.AddMedia(item)
	if err != nil {
		t.Fatalf("AddMedia(%s): %v", item.Title, err)
	}
	return added
}

func mustCollection(t *testing.T, s *Store, name string) string {
	t.Helper()
	id, err := s.CreateCollection(name, "")
	if err != nil {
		t.Fatalf("CreateCollection(%s): %v", name, err)
	}
	return id
}

// ids extracts item ids in order, for compact comparisons.
func ids(items []*MediaItem) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.ID
	}
	return out
}

func sameIDs(a []string, b ...string) error {
	if len(a) != len(b) {
		return fmt.Errorf("got %v, want %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("got %v, want %v", a, b)
		}
	}
	return nil
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

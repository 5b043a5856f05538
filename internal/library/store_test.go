package library

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vmunix/medialog/internal/notify"
)

func TestStore_AddMedia(t *testing.T) {
	s, provider, rec := newTestStore(t)

	item := movie("", "Fight Club", 1999)
	added := mustAdd(t, s, item)

	if added.ID == "" {
		t.Error("ID should be generated when absent")
	}
	if item.ID != "" {
		t.Error("input item must not be mutated")
	}
	if provider.saves != 1 {
		t.Errorf("saves = %d, want 1", provider.saves)
	}

	last, ok := rec.Last()
	if !ok || last.Level != notify.LevelSuccess {
		t.Fatalf("expected success notification, got %+v", last)
	}
	if !strings.Contains(last.Message, "Fight Club") {
		t.Errorf("notification %q should name the title", last.Message)
	}
}

func TestStore_AddMedia_NewestFirst(t *testing.T) {
	s, _, _ := newTestStore(t)

	mustAdd(t, s, movie("a", "Alien", 1979))
	mustAdd(t, s, movie("b", "Blade Runner", 1982))

	if err := sameIDs(ids(s.Items()), "b", "a"); err != nil {
		t.Fatalf("items order: %v", err)
	}
}

func TestStore_AddMedia_Validation(t *testing.T) {
	tests := []struct {
		name string
		item *MediaItem
	}{
		{"empty title", &MediaItem{Type: TypeMovie, Year: 2000}},
		{"unknown type", &MediaItem{Title: "X", Type: "podcast", Year: 2000}},
		{"year too early", movie("", "X", 1850)},
		{"year too late", movie("", "X", MaxYear()+1)},
		{"rating too low", func() *MediaItem { m := movie("", "X", 2000); m.Rating = ptr(0); return m }()},
		{"rating too high", func() *MediaItem { m := movie("", "X", 2000); m.Rating = ptr(6); return m }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, provider, rec := newTestStore(t)
			if _, err := s.AddMedia(tt.item); !errors.Is(err, ErrInvalid) {
				t.Fatalf("AddMedia = %v, want ErrInvalid", err)
			}
			if provider.saves != 0 {
				t.Error("invalid item must not be persisted")
			}
			if last, ok := rec.Last(); !ok || last.Level != notify.LevelError {
				t.Errorf("expected error notification, got %+v", last)
			}
		})
	}
}

func TestStore_AddMedia_DuplicateTitleYear(t *testing.T) {
	s, _, rec := newTestStore(t)
	mustAdd(t, s, movie("", "Heat", 1995))

	if _, err := s.AddMedia(movie("", "Heat", 1995)); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("AddMedia = %v, want ErrDuplicate", err)
	}
	if len(s.Items()) != 1 {
		t.Errorf("items = %d, want 1", len(s.Items()))
	}
	if last, _ := rec.Last(); last.Level != notify.LevelError {
		t.Errorf("expected error notification, got %+v", last)
	}

	// Same title in a different year is a distinct item.
	mustAdd(t, s, movie("", "Heat", 1972))
	if len(s.Items()) != 2 {
		t.Errorf("items = %d, want 2", len(s.Items()))
	}
}

func TestStore_AddMedia_DuplicateID(t *testing.T) {
	s, provider, rec := newTestStore(t)
	mustAdd(t, s, movie("x", "Heat", 1995))
	saves := provider.saves
	rec.Reset()

	if _, err := s.AddMedia(movie("x", "Alien", 1979)); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("AddMedia = %v, want ErrDuplicate", err)
	}
	if err := sameIDs(ids(s.Items()), "x"); err != nil {
		t.Fatalf("items: %v", err)
	}
	if provider.saves != saves {
		t.Error("rejected add should not persist")
	}
	if last, _ := rec.Last(); last.Level != notify.LevelError {
		t.Errorf("expected error notification, got %+v", last)
	}
}

func TestStore_AddMedia_SimilarTitleHint(t *testing.T) {
	s, _, rec := newTestStore(t)
	mustAdd(t, s, movie("", "The Matrix", 1999))
	rec.Reset()

	mustAdd(t, s, movie("", "Matrix", 2003))

	var hinted bool
	for _, n := range rec.All() {
		if n.Level == notify.LevelInfo && strings.Contains(n.Message, "Similar title") {
			hinted = true
		}
	}
	if !hinted {
		t.Errorf("expected similar-title hint, got %+v", rec.All())
	}
}

func TestStore_DeleteMedia_ReferentialCleanup(t *testing.T) {
	s, _, _ := newTestStore(t)

	a := movie("a", "Alien", 1979)
	a.RelatedMedia = []string{"b"}
	b := movie("b", "Aliens", 1986)
	b.RelatedMedia = []string{"a"}
	mustAdd(t, s, a)
	mustAdd(t, s, b)

	colID := mustCollection(t, s, "Xenomorphs")
	s.AddToCollection(colID, "a")
	s.AddToCollection(colID, "b")

	s.DeleteMedia("b")

	if _, ok := s.GetMedia("b"); ok {
		t.Fatal("item b should be gone")
	}
	got, _ := s.GetMedia("a")
	for _, rid := range got.RelatedMedia {
		if rid == "b" {
			t.Error("deleted id must be stripped from relatedMedia")
		}
	}
	col, _ := s.GetCollection(colID)
	if err := sameIDs(col.MediaIDs, "a"); err != nil {
		t.Errorf("collection membership: %v", err)
	}
}

func TestStore_DeleteMedia_UnknownID(t *testing.T) {
	s, provider, rec := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))
	saves := provider.saves
	rec.Reset()

	s.DeleteMedia("nope")

	if len(s.Items()) != 1 {
		t.Error("unknown delete must not change items")
	}
	if provider.saves != saves {
		t.Error("unknown delete must not persist")
	}
	if _, ok := rec.Last(); ok {
		t.Error("unknown delete must not notify")
	}
}

func TestStore_ToggleWatched(t *testing.T) {
	s, _, rec := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))

	s.ToggleWatched("a")
	if got, _ := s.GetMedia("a"); !got.Watched {
		t.Error("first toggle should mark watched")
	}
	if last, _ := rec.Last(); !strings.Contains(last.Message, "marked as watched") {
		t.Errorf("notification = %q", last.Message)
	}

	s.ToggleWatched("a")
	if got, _ := s.GetMedia("a"); got.Watched {
		t.Error("second toggle should mark unwatched")
	}

	// Unknown id is a silent no-op.
	rec.Reset()
	s.ToggleWatched("nope")
	if _, ok := rec.Last(); ok {
		t.Error("unknown toggle must not notify")
	}
}

func TestStore_UpdateRating(t *testing.T) {
	s, _, rec := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))

	if err := s.UpdateRating("a", 4); err != nil {
		t.Fatalf("UpdateRating: %v", err)
	}
	got, _ := s.GetMedia("a")
	if got.Rating == nil || *got.Rating != 4 {
		t.Errorf("rating = %v, want 4", got.Rating)
	}
	if last, _ := rec.Last(); !strings.Contains(last.Message, "4 stars") {
		t.Errorf("notification = %q", last.Message)
	}
}

func TestStore_UpdateRating_OutOfRange(t *testing.T) {
	s, _, rec := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))
	rec.Reset()

	for _, bad := range []int{0, 6, -1} {
		if err := s.UpdateRating("a", bad); !errors.Is(err, ErrInvalid) {
			t.Errorf("UpdateRating(%d) = %v, want ErrInvalid", bad, err)
		}
	}
	got, _ := s.GetMedia("a")
	if got.Rating != nil {
		t.Errorf("rating = %v, want unset", got.Rating)
	}
	if last, _ := rec.Last(); last.Level != notify.LevelWarning {
		t.Errorf("expected warning, got %+v", last)
	}
}

func TestStore_UpdateRating_UnknownID(t *testing.T) {
	s, provider, _ := newTestStore(t)
	saves := provider.saves

	if err := s.UpdateRating("nope", 3); err != nil {
		t.Fatalf("unknown id should be a no-op, got %v", err)
	}
	if provider.saves != saves {
		t.Error("unknown rating must not persist")
	}
}

func TestStore_UpdateRelatedMedia(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))

	s.UpdateRelatedMedia("a", []string{"x", "y"})
	got, _ := s.GetMedia("a")
	if err := sameIDs(got.RelatedMedia, "x", "y"); err != nil {
		t.Fatalf("relatedMedia: %v", err)
	}

	// Wholesale replace, including down to empty.
	s.UpdateRelatedMedia("a", []string{})
	got, _ = s.GetMedia("a")
	if len(got.RelatedMedia) != 0 {
		t.Errorf("relatedMedia = %v, want empty", got.RelatedMedia)
	}
}

func TestStore_RelatedItems_FiltersDangling(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := movie("a", "Alien", 1979)
	a.RelatedMedia = []string{"b", "ghost"}
	mustAdd(t, s, a)
	mustAdd(t, s, movie("b", "Aliens", 1986))

	related := s.RelatedItems("a")
	if err := sameIDs(ids(related), "b"); err != nil {
		t.Fatalf("related: %v", err)
	}
	if s.RelatedItems("nope") != nil {
		t.Error("unknown id should return nil")
	}
}

func TestStore_ImportMedia_MergeDropsInvalid(t *testing.T) {
	s, _, rec := newTestStore(t)

	candidates := []*MediaItem{
		movie("v1", "Valid", 2001),
		{Title: "", Type: TypeMovie, Year: 2002, Description: "no title", Genres: []string{}},
	}
	imported, dropped := s.ImportMedia(candidates, ImportMerge)

	if imported != 1 || dropped != 1 {
		t.Fatalf("imported=%d dropped=%d, want 1/1", imported, dropped)
	}
	if err := sameIDs(ids(s.Items()), "v1"); err != nil {
		t.Fatalf("items: %v", err)
	}
	if last, _ := rec.Last(); last.Level != notify.LevelWarning {
		t.Errorf("expected warning with drop count, got %+v", last)
	}
}

func TestStore_ImportMedia_DropsOutOfRangeRating(t *testing.T) {
	s, _, _ := newTestStore(t)

	overrated := movie("v2", "Overrated", 2002)
	overrated.Rating = ptr(10)
	candidates := []*MediaItem{movie("v1", "Valid", 2001), overrated}
	imported, dropped := s.ImportMedia(candidates, ImportMerge)

	if imported != 1 || dropped != 1 {
		t.Fatalf("imported=%d dropped=%d, want 1/1", imported, dropped)
	}
	if err := sameIDs(ids(s.Items()), "v1"); err != nil {
		t.Fatalf("items: %v", err)
	}
}

func TestStore_ImportMedia_MergeReplacesByID(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Old Title", 1990))

	updated := movie("a", "New Title", 1990)
	imported, _ := s.ImportMedia([]*MediaItem{updated, movie("b", "Brand New", 2020)}, ImportMerge)

	if imported != 2 {
		t.Fatalf("imported = %d, want 2", imported)
	}
	got, _ := s.GetMedia("a")
	if got.Title != "New Title" {
		t.Errorf("title = %q, want replaced", got.Title)
	}
	if len(s.Items()) != 2 {
		t.Errorf("items = %d, want 2", len(s.Items()))
	}
}

func TestStore_ImportMedia_Replace(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Keep Me Not", 1990))

	s.ImportMedia([]*MediaItem{movie("z", "Only Me", 2000)}, ImportReplace)

	if err := sameIDs(ids(s.Items()), "z"); err != nil {
		t.Fatalf("items: %v", err)
	}
}

func TestStore_ImportMedia_ReplacePrunesCollectionMembership(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Kept", 1990))
	mustAdd(t, s, movie("b", "Replaced Away", 1991))
	colID := mustCollection(t, s, "Mixed")
	s.AddToCollection(colID, "a")
	s.AddToCollection(colID, "b")

	s.ImportMedia([]*MediaItem{movie("a", "Kept", 1990)}, ImportReplace)

	col, _ := s.GetCollection(colID)
	if err := sameIDs(col.MediaIDs, "a"); err != nil {
		t.Fatalf("collection members: %v", err)
	}
}

func TestStore_ClearAll(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))
	colID := mustCollection(t, s, "Favorites")
	s.SetActiveCollection(colID)

	s.ClearAll()

	if len(s.Items()) != 0 || len(s.Collections()) != 0 {
		t.Error("clear should empty items and collections")
	}
	if _, _, col := s.ActiveFilters(); col != "" {
		t.Error("clear should reset the active collection")
	}
}

func TestStore_Collections(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, err := s.CreateCollection("", ""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("blank name = %v, want ErrInvalid", err)
	}

	id := mustCollection(t, s, "Noir")
	if _, err := s.CreateCollection("Noir", ""); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate name = %v, want ErrDuplicate", err)
	}

	col, ok := s.GetCollection(id)
	if !ok || col.Name != "Noir" {
		t.Fatalf("GetCollection = %+v", col)
	}
	if col.MediaIDs == nil {
		t.Error("new collection should have an empty, non-nil member list")
	}
}

func TestStore_UpdateCollection(t *testing.T) {
	s, _, _ := newTestStore(t)
	id := mustCollection(t, s, "Noir")

	s.UpdateCollection(id, CollectionUpdate{Image: ptr("cover.jpg")})
	col, _ := s.GetCollection(id)
	if col.Name != "Noir" || col.Image != "cover.jpg" {
		t.Errorf("partial update: %+v", col)
	}

	// Empty name is ignored, not applied.
	s.UpdateCollection(id, CollectionUpdate{Name: ptr("")})
	col, _ = s.GetCollection(id)
	if col.Name != "Noir" {
		t.Errorf("name = %q, want unchanged", col.Name)
	}

	s.UpdateCollection(id, CollectionUpdate{Name: ptr("Film Noir")})
	col, _ = s.GetCollection(id)
	if col.Name != "Film Noir" {
		t.Errorf("name = %q, want Film Noir", col.Name)
	}
}

func TestStore_DeleteCollection(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))
	id := mustCollection(t, s, "Noir")
	s.AddToCollection(id, "a")
	s.SetActiveCollection(id)

	s.DeleteCollection(id)

	if _, ok := s.GetCollection(id); ok {
		t.Fatal("collection should be gone")
	}
	if _, ok := s.GetMedia("a"); !ok {
		t.Error("media must survive collection deletion")
	}
	if _, _, col := s.ActiveFilters(); col != "" {
		t.Error("deleting the active collection should clear the filter")
	}
}

func TestStore_AddToCollection(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))
	id := mustCollection(t, s, "Noir")

	s.AddToCollection(id, "a")
	s.AddToCollection(id, "a") // idempotent
	s.AddToCollection(id, "ghost")
	s.AddToCollection("ghost", "a")

	col, _ := s.GetCollection(id)
	if err := sameIDs(col.MediaIDs, "a"); err != nil {
		t.Fatalf("membership: %v", err)
	}
}

func TestStore_RemoveFromCollection(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))
	id := mustCollection(t, s, "Noir")
	s.AddToCollection(id, "a")

	s.RemoveFromCollection(id, "a")
	s.RemoveFromCollection(id, "a") // already gone, no-op

	col, _ := s.GetCollection(id)
	if len(col.MediaIDs) != 0 {
		t.Errorf("membership = %v, want empty", col.MediaIDs)
	}
}

func TestStore_Filters(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("m1", "Alien", 1979))
	m2 := movie("m2", "Aliens", 1986)
	m2.Watched = true
	mustAdd(t, s, m2)
	tv := show("t1", "The Wire", 2002)
	tv.Watched = true
	mustAdd(t, s, tv)

	colID := mustCollection(t, s, "Watchlist")
	s.AddToCollection(colID, "m1")
	s.AddToCollection(colID, "t1")

	tests := []struct {
		name  string
		tf    TypeFilter
		wf    WatchFilter
		col   string
		want  []string
	}{
		{"all", FilterAll, WatchAll, "", []string{"t1", "m2", "m1"}},
		{"movies only", FilterMovies, WatchAll, "", []string{"m2", "m1"}},
		{"tv only", FilterTVShows, WatchAll, "", []string{"t1"}},
		{"watched", FilterAll, WatchWatched, "", []string{"t1", "m2"}},
		{"unwatched", FilterAll, WatchUnwatched, "", []string{"m1"}},
		{"collection", FilterAll, WatchAll, colID, []string{"t1", "m1"}},
		{"collection AND type", FilterMovies, WatchAll, colID, []string{"m1"}},
		{"collection AND watched AND type", FilterMovies, WatchWatched, colID, nil},
		{"unknown collection", FilterAll, WatchAll, "ghost", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(s.Filtered(tt.tf, tt.wf, tt.col))
			if err := sameIDs(got, tt.want...); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestStore_ActiveFilters(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("m1", "Alien", 1979))
	tv := show("t1", "The Wire", 2002)
	mustAdd(t, s, tv)

	s.SetTypeFilter(FilterTVShows)
	if err := sameIDs(ids(s.FilteredItems()), "t1"); err != nil {
		t.Fatal(err)
	}

	s.SetTypeFilter(FilterAll)
	s.SetWatchFilter(WatchUnwatched)
	if len(s.FilteredItems()) != 2 {
		t.Error("both items are unwatched")
	}

	tf, wf, col := s.ActiveFilters()
	if tf != FilterAll || wf != WatchUnwatched || col != "" {
		t.Errorf("ActiveFilters = %v %v %q", tf, wf, col)
	}
}

func TestStore_WatchedUnwatched(t *testing.T) {
	s, _, _ := newTestStore(t)
	m := movie("m1", "Alien", 1979)
	m.Watched = true
	mustAdd(t, s, m)
	mustAdd(t, s, movie("m2", "Aliens", 1986))

	if err := sameIDs(ids(s.WatchedItems()), "m1"); err != nil {
		t.Fatal(err)
	}
	if err := sameIDs(ids(s.UnwatchedItems()), "m2"); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Load_SeedsOnFirstRun(t *testing.T) {
	s, provider, _ := newTestStore(t)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	seed := SeedData()
	if len(s.Items()) != len(seed.Items) {
		t.Errorf("items = %d, want %d seeded", len(s.Items()), len(seed.Items))
	}
	if len(s.Collections()) != len(seed.Collections) {
		t.Errorf("collections = %d, want %d", len(s.Collections()), len(seed.Collections))
	}
	if provider.saves != 1 {
		t.Errorf("seed should be persisted immediately, saves = %d", provider.saves)
	}
}

func TestStore_Load_UsesSavedState(t *testing.T) {
	provider := &fakeProvider{
		snap: Snapshot{Items: []*MediaItem{movie("x", "Saved", 2000)}},
		ok:   true,
	}
	s := NewStore(provider, nil, nil)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := sameIDs(ids(s.Items()), "x"); err != nil {
		t.Fatal(err)
	}
	if provider.saves != 0 {
		t.Error("loading saved state must not trigger a save")
	}
}

func TestStore_Load_ClearedLibraryStaysEmpty(t *testing.T) {
	// A deliberately emptied library is saved state, not a first run.
	provider := &fakeProvider{snap: Snapshot{}, ok: true}
	s := NewStore(provider, nil, nil)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Error("cleared library must not be reseeded")
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s, _, _ := newTestStore(t)
	if err := s.LoadEmpty(context.Background()); err != nil {
		t.Fatalf("LoadEmpty: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Error("LoadEmpty must not seed")
	}
}

func TestStore_Load_ProviderError(t *testing.T) {
	provider := &fakeProvider{loadErr: errors.New("disk gone")}
	s := NewStore(provider, nil, nil)

	if err := s.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
}

func TestStore_SaveFailureKeepsMemoryState(t *testing.T) {
	s, provider, rec := newTestStore(t)
	provider.saveErr = errors.New("disk full")

	mustAdd(t, s, movie("a", "Alien", 1979))

	if _, ok := s.GetMedia("a"); !ok {
		t.Fatal("in-memory state must survive a failed save")
	}
	var reported bool
	for _, n := range rec.All() {
		if n.Level == notify.LevelError && strings.Contains(n.Message, "Failed to save") {
			reported = true
		}
	}
	if !reported {
		t.Errorf("expected save-failure notification, got %+v", rec.All())
	}
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s, _, _ := newTestStore(t)
	m := movie("a", "Alien", 1979)
	m.Genres = []string{"Horror"}
	mustAdd(t, s, m)

	got, _ := s.GetMedia("a")
	got.Title = "Mutated"
	got.Genres[0] = "Comedy"

	fresh, _ := s.GetMedia("a")
	if fresh.Title != "Alien" || fresh.Genres[0] != "Horror" {
		t.Error("mutating a returned item must not affect the store")
	}
}

func TestStore_FindByTitle(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))

	if got, ok := s.FindByTitle("Alien"); !ok || got.ID != "a" {
		t.Fatalf("FindByTitle = %+v, %v", got, ok)
	}
	if _, ok := s.FindByTitle("alien"); ok {
		t.Error("lookup is exact, case-sensitive")
	}
}

func TestStore_FindCollectionByName(t *testing.T) {
	s, _, _ := newTestStore(t)
	id := mustCollection(t, s, "Noir")

	if got, ok := s.FindCollectionByName("Noir"); !ok || got.ID != id {
		t.Fatalf("FindCollectionByName = %+v, %v", got, ok)
	}
	if _, ok := s.FindCollectionByName("noir"); ok {
		t.Error("lookup is exact, case-sensitive")
	}
}

func TestStore_Flush(t *testing.T) {
	s, provider, _ := newTestStore(t)
	mustAdd(t, s, movie("a", "Alien", 1979))
	saves := provider.saves

	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if provider.saves != saves+1 {
		t.Error("Flush should save")
	}

	provider.saveErr = errors.New("disk full")
	if err := s.Flush(context.Background()); err == nil {
		t.Fatal("expected flush error")
	}
}

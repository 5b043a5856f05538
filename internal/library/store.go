package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vmunix/medialog/internal/notify"
	"github.com/vmunix/medialog/internal/search"
)

// ImportMode controls how ImportMedia combines candidates with existing items.
type ImportMode string

const (
	// ImportMerge merges by id: new ids are appended, colliding ids are
	// replaced in place. This is the default.
	ImportMerge ImportMode = "merge"

	// ImportReplace discards the current item set and keeps only the
	// imported candidates.
	ImportReplace ImportMode = "replace"
)

// Store owns the in-memory media catalog and keeps its relational
// invariants consistent. It is the single source of truth during a
// session; persistence is a best-effort side effect of every mutation.
//
// The store is safe for concurrent use. There is no cross-process
// coordination: concurrent writers to the same backing state get
// last-writer-wins semantics.
type Store struct {
	mu               sync.RWMutex
	items            []*MediaItem
	collections      []*Collection
	typeFilter       TypeFilter
	watchFilter      WatchFilter
	activeCollection string

	provider Provider
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewStore creates a library store writing through to provider.
func NewStore(provider Provider, notifier notify.Notifier, logger *slog.Logger) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		typeFilter:  FilterAll,
		watchFilter: WatchAll,
		provider:    provider,
		notifier:    notifier,
		logger:      logger,
	}
}

// Load populates the store from the provider, falling back to the default
// seed data when no prior state exists.
func (s *Store) Load(ctx context.Context) error {
	snap, ok, err := s.provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("load library: %w", err)
	}
	if !ok {
		snap = SeedData()
		s.logger.Info("no saved library, seeding sample data", "items", len(snap.Items))
	}

	s.mu.Lock()
	s.items = snap.Items
	s.collections = snap.Collections
	s.mu.Unlock()

	if !ok {
		s.flush()
	}
	s.logger.Debug("library loaded", "items", len(snap.Items), "collections", len(snap.Collections))
	return nil
}

// LoadEmpty populates the store from the provider without seeding:
// when no prior state exists the library simply starts empty.
func (s *Store) LoadEmpty(ctx context.Context) error {
	snap, _, err := s.provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("load library: %w", err)
	}
	s.mu.Lock()
	s.items = snap.Items
	s.collections = snap.Collections
	s.mu.Unlock()
	return nil
}

// --- Reads ---

// Items returns a copy of all media items, newest first.
func (s *Store) Items() []*MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// WatchedItems returns all items marked watched.
func (s *Store) WatchedItems() []*MediaItem {
	return s.selectItems(func(m *MediaItem) bool { return m.Watched })
}

// UnwatchedItems returns all items not yet watched.
func (s *Store) UnwatchedItems() []*MediaItem {
	return s.selectItems(func(m *MediaItem) bool { return !m.Watched })
}

// FilteredItems returns items passing the active collection, type, and
// watch filters. All three AND together.
func (s *Store) FilteredItems() []*MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filteredLocked(s.typeFilter, s.watchFilter, s.activeCollection)
}

// Filtered returns items passing the given filters, ignoring the store's
// active filter state. Used for per-request filtering at the API.
func (s *Store) Filtered(tf TypeFilter, wf WatchFilter, collectionID string) []*MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filteredLocked(tf, wf, collectionID)
}

func (s *Store) filteredLocked(tf TypeFilter, wf WatchFilter, collectionID string) []*MediaItem {
	var member map[string]bool
	if collectionID != "" {
		member = map[string]bool{}
		if c := s.findCollection(collectionID); c != nil {
			for _, id := range c.MediaIDs {
				member[id] = true
			}
		}
	}

	var out []*MediaItem
	for _, m := range s.items {
		if member != nil && !member[m.ID] {
			continue
		}
		if !tf.matches(m) || !wf.matches(m) {
			continue
		}
		out = append(out, m.Clone())
	}
	return out
}

// GetMedia returns a copy of the item with the given id.
func (s *Store) GetMedia(id string) (*MediaItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m := s.findItem(id); m != nil {
		return m.Clone(), true
	}
	return nil, false
}

// RelatedItems returns the existing items referenced by the item's
// relatedMedia list. Dangling ids are filtered out, never an error.
func (s *Store) RelatedItems(id string) []*MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findItem(id)
	if m == nil {
		return nil
	}
	var out []*MediaItem
	for _, rid := range m.RelatedMedia {
		if r := s.findItem(rid); r != nil {
			out = append(out, r.Clone())
		}
	}
	return out
}

// FindByTitle returns a copy of the first item with an exact title match.
func (s *Store) FindByTitle(title string) (*MediaItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.items {
		if m.Title == title {
			return m.Clone(), true
		}
	}
	return nil, false
}

// FindCollectionByName returns a copy of the collection with an exact
// name match. Names are unique, case-sensitive.
func (s *Store) FindCollectionByName(name string) (*Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.collections {
		if c.Name == name {
			return c.Clone(), true
		}
	}
	return nil, false
}

// Collections returns a copy of all collections.
func (s *Store) Collections() []*Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Collection, len(s.collections))
	for i, c := range s.collections {
		out[i] = c.Clone()
	}
	return out
}

// GetCollection returns a copy of the collection with the given id.
func (s *Store) GetCollection(id string) (*Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c := s.findCollection(id); c != nil {
		return c.Clone(), true
	}
	return nil, false
}

// Snapshot returns a deep copy of the durable state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// --- Filters ---

// SetTypeFilter selects which media types FilteredItems returns.
func (s *Store) SetTypeFilter(f TypeFilter) {
	s.mu.Lock()
	s.typeFilter = f
	s.mu.Unlock()
}

// SetWatchFilter selects which watch states FilteredItems returns.
func (s *Store) SetWatchFilter(f WatchFilter) {
	s.mu.Lock()
	s.watchFilter = f
	s.mu.Unlock()
}

// SetActiveCollection restricts FilteredItems to a collection's members.
// An empty id clears the restriction.
func (s *Store) SetActiveCollection(id string) {
	s.mu.Lock()
	s.activeCollection = id
	s.mu.Unlock()
}

// ActiveFilters returns the current type filter, watch filter, and active
// collection id.
func (s *Store) ActiveFilters() (TypeFilter, WatchFilter, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typeFilter, s.watchFilter, s.activeCollection
}

// --- Media mutations ---

// AddMedia validates and inserts a new item at the head of the library.
// The id is generated when absent. An existing (title, year) pair is
// rejected, as is a caller-supplied id already in use.
func (s *Store) AddMedia(item *MediaItem) (*MediaItem, error) {
	if item.Title == "" {
		s.notifier.Notify(notify.LevelError, "Title is required")
		return nil, fmt.Errorf("title: %w", ErrInvalid)
	}
	if !item.Type.Valid() {
		s.notifier.Notify(notify.LevelError, fmt.Sprintf("Unknown media type %q", item.Type))
		return nil, fmt.Errorf("type %q: %w", item.Type, ErrInvalid)
	}
	if item.Year < MinYear || item.Year > MaxYear() {
		s.notifier.Notify(notify.LevelError, fmt.Sprintf("Year %d is out of range", item.Year))
		return nil, fmt.Errorf("year %d: %w", item.Year, ErrInvalid)
	}
	if item.Rating != nil && (*item.Rating < 1 || *item.Rating > 5) {
		s.notifier.Notify(notify.LevelError, "Rating must be between 1 and 5")
		return nil, fmt.Errorf("rating %d: %w", *item.Rating, ErrInvalid)
	}

	s.mu.Lock()
	if s.findByTitleYear(item.Title, item.Year) != nil {
		s.mu.Unlock()
		s.notifier.Notify(notify.LevelError,
			fmt.Sprintf("%s (%d) is already in your library", item.Title, item.Year))
		return nil, fmt.Errorf("%s (%d): %w", item.Title, item.Year, ErrDuplicate)
	}
	if item.ID != "" && s.findItem(item.ID) != nil {
		s.mu.Unlock()
		s.notifier.Notify(notify.LevelError,
			fmt.Sprintf("An item with id %s already exists", item.ID))
		return nil, fmt.Errorf("id %s: %w", item.ID, ErrDuplicate)
	}

	added := item.Clone()
	if added.ID == "" {
		added.ID = uuid.NewString()
	}
	if added.Genres == nil {
		added.Genres = []string{}
	}
	if added.RelatedMedia == nil {
		added.RelatedMedia = []string{}
	}
	s.items = append([]*MediaItem{added}, s.items...)
	similar := s.similarTitleLocked(added)
	s.mu.Unlock()

	s.flush()
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Added %s to your library", added.Title))
	if similar != "" {
		s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("Similar title already in library: %s", similar))
	}
	return added.Clone(), nil
}

// DeleteMedia removes an item and strips its id from every other item's
// relatedMedia and every collection's mediaIds. Unknown ids are a no-op.
func (s *Store) DeleteMedia(id string) {
	s.mu.Lock()
	idx := s.itemIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	title := s.items[idx].Title
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	for _, m := range s.items {
		m.RelatedMedia = removeID(m.RelatedMedia, id)
	}
	for _, c := range s.collections {
		c.MediaIDs = removeID(c.MediaIDs, id)
	}
	s.mu.Unlock()

	s.flush()
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Removed %s from your library", title))
}

// ToggleWatched flips the watched flag. Unknown ids are a no-op.
func (s *Store) ToggleWatched(id string) {
	s.mu.Lock()
	m := s.findItem(id)
	if m == nil {
		s.mu.Unlock()
		return
	}
	m.Watched = !m.Watched
	title, watched := m.Title, m.Watched
	s.mu.Unlock()

	s.flush()
	state := "unwatched"
	if watched {
		state = "watched"
	}
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("%s marked as %s", title, state))
}

// UpdateRating sets the item's rating. Ratings outside 1-5 are rejected.
// Unknown ids are a no-op.
func (s *Store) UpdateRating(id string, rating int) error {
	if rating < 1 || rating > 5 {
		s.notifier.Notify(notify.LevelWarning, "Rating must be between 1 and 5")
		return fmt.Errorf("rating %d: %w", rating, ErrInvalid)
	}

	s.mu.Lock()
	m := s.findItem(id)
	if m == nil {
		s.mu.Unlock()
		return nil
	}
	r := rating
	m.Rating = &r
	title := m.Title
	s.mu.Unlock()

	s.flush()
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Rated %s %d stars", title, rating))
	return nil
}

// UpdateRelatedMedia replaces the item's relatedMedia list wholesale.
// The caller is responsible for excluding self-references and duplicates.
func (s *Store) UpdateRelatedMedia(id string, relatedIDs []string) {
	s.mu.Lock()
	m := s.findItem(id)
	if m == nil {
		s.mu.Unlock()
		return
	}
	m.RelatedMedia = append([]string(nil), relatedIDs...)
	s.mu.Unlock()

	s.flush()
}

// ImportMedia validates candidates and folds them into the library.
// Invalid candidates are dropped and counted. In merge mode (the default)
// candidates replace existing items with the same id and new ids are
// appended; in replace mode the imported set becomes the whole library
// and collection membership is pruned to the surviving ids.
// Returns the number of items imported and the number dropped.
func (s *Store) ImportMedia(candidates []*MediaItem, mode ImportMode) (imported, dropped int) {
	var valid []*MediaItem
	for _, c := range candidates {
		if !validImport(c) {
			dropped++
			continue
		}
		item := c.Clone()
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.RelatedMedia == nil {
			item.RelatedMedia = []string{}
		}
		valid = append(valid, item)
	}

	s.mu.Lock()
	switch mode {
	case ImportReplace:
		s.items = valid
		// Collections survive a replace, but their membership lists must
		// not reference ids absent from the new item set.
		keep := make(map[string]bool, len(valid))
		for _, item := range valid {
			keep[item.ID] = true
		}
		for _, c := range s.collections {
			ids := c.MediaIDs[:0]
			for _, id := range c.MediaIDs {
				if keep[id] {
					ids = append(ids, id)
				}
			}
			c.MediaIDs = ids
		}
	default:
		for _, item := range valid {
			if idx := s.itemIndex(item.ID); idx >= 0 {
				s.items[idx] = item
			} else {
				s.items = append(s.items, item)
			}
		}
	}
	s.mu.Unlock()

	s.flush()
	if dropped > 0 {
		s.notifier.Notify(notify.LevelWarning,
			fmt.Sprintf("Imported %d media items (%d invalid items dropped)", len(valid), dropped))
	} else {
		s.notifier.Notify(notify.LevelSuccess,
			fmt.Sprintf("Imported %d media items", len(valid)))
	}
	return len(valid), dropped
}

// ClearAll empties the library and all collections.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.items = nil
	s.collections = nil
	s.activeCollection = ""
	s.mu.Unlock()

	s.flush()
	s.notifier.Notify(notify.LevelSuccess, "Library cleared")
}

// --- Collection mutations ---

// CreateCollection adds an empty collection and returns its id.
// Blank and duplicate names are rejected.
func (s *Store) CreateCollection(name, image string) (string, error) {
	if name == "" {
		s.notifier.Notify(notify.LevelError, "Collection name cannot be blank")
		return "", fmt.Errorf("collection name: %w", ErrInvalid)
	}

	s.mu.Lock()
	for _, c := range s.collections {
		if c.Name == name {
			s.mu.Unlock()
			s.notifier.Notify(notify.LevelError,
				fmt.Sprintf("A collection named %q already exists", name))
			return "", fmt.Errorf("collection %q: %w", name, ErrDuplicate)
		}
	}
	c := &Collection{
		ID:       uuid.NewString(),
		Name:     name,
		MediaIDs: []string{},
		Image:    image,
	}
	s.collections = append(s.collections, c)
	s.mu.Unlock()

	s.flush()
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Created collection %s", name))
	return c.ID, nil
}

// UpdateCollection merges the non-nil fields into the collection.
// Unknown ids are a no-op.
func (s *Store) UpdateCollection(id string, update CollectionUpdate) {
	s.mu.Lock()
	c := s.findCollection(id)
	if c == nil {
		s.mu.Unlock()
		return
	}
	if update.Name != nil && *update.Name != "" {
		c.Name = *update.Name
	}
	if update.Image != nil {
		c.Image = *update.Image
	}
	s.mu.Unlock()

	s.flush()
}

// DeleteCollection removes a collection. Media items are unaffected.
// Deleting the active collection clears the active collection filter.
func (s *Store) DeleteCollection(id string) {
	s.mu.Lock()
	idx := -1
	for i, c := range s.collections {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	name := s.collections[idx].Name
	s.collections = append(s.collections[:idx], s.collections[idx+1:]...)
	if s.activeCollection == id {
		s.activeCollection = ""
	}
	s.mu.Unlock()

	s.flush()
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Deleted collection %s", name))
}

// AddToCollection appends the media id to the collection if not already
// present. Idempotent; unknown ids on either side are a no-op.
func (s *Store) AddToCollection(collectionID, mediaID string) {
	s.mu.Lock()
	c := s.findCollection(collectionID)
	if c == nil || s.findItem(mediaID) == nil {
		s.mu.Unlock()
		return
	}
	for _, id := range c.MediaIDs {
		if id == mediaID {
			s.mu.Unlock()
			return
		}
	}
	c.MediaIDs = append(c.MediaIDs, mediaID)
	s.mu.Unlock()

	s.flush()
}

// RemoveFromCollection removes the media id from the collection's list.
// Unknown ids are a no-op.
func (s *Store) RemoveFromCollection(collectionID, mediaID string) {
	s.mu.Lock()
	c := s.findCollection(collectionID)
	if c == nil {
		s.mu.Unlock()
		return
	}
	c.MediaIDs = removeID(c.MediaIDs, mediaID)
	s.mu.Unlock()

	s.flush()
}

// Flush persists the current state. Mutations already flush; this exists
// for periodic background saves.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()
	if err := s.provider.Save(ctx, snap); err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	return nil
}

// --- internals; callers hold s.mu unless noted ---

func (s *Store) findItem(id string) *MediaItem {
	for _, m := range s.items {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Store) itemIndex(id string) int {
	for i, m := range s.items {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findByTitleYear(title string, year int) *MediaItem {
	for _, m := range s.items {
		if m.Title == title && m.Year == year {
			return m
		}
	}
	return nil
}

func (s *Store) findCollection(id string) *Collection {
	for _, c := range s.collections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// similarTitleLocked reports an existing title that closely matches the
// newly added item, or "" when nothing is close.
func (s *Store) similarTitleLocked(added *MediaItem) string {
	var candidates []string
	for _, m := range s.items {
		if m.ID != added.ID {
			candidates = append(candidates, m.Title)
		}
	}
	res := search.Match(added.Title, candidates)
	if res.Confidence >= search.ConfidenceMedium {
		return res.Title
	}
	return ""
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:       cloneItems(s.items),
		Collections: cloneCollections(s.collections),
	}
}

// flush saves best-effort without holding the lock. Failures are reported
// but never roll back in-memory state.
func (s *Store) flush() {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	if err := s.provider.Save(context.Background(), snap); err != nil {
		s.logger.Error("failed to save library", "error", err)
		s.notifier.Notify(notify.LevelError, "Failed to save your library")
	}
}

func (s *Store) selectItems(keep func(*MediaItem) bool) []*MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*MediaItem
	for _, m := range s.items {
		if keep(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}

func validImport(m *MediaItem) bool {
	if m == nil || m.Title == "" || !m.Type.Valid() {
		return false
	}
	if m.Year == 0 || m.Description == "" || m.Genres == nil {
		return false
	}
	if m.Rating != nil && (*m.Rating < 1 || *m.Rating > 5) {
		return false
	}
	return true
}

func cloneItems(items []*MediaItem) []*MediaItem {
	out := make([]*MediaItem, len(items))
	for i, m := range items {
		out[i] = m.Clone()
	}
	return out
}

func cloneCollections(cols []*Collection) []*Collection {
	out := make([]*Collection, len(cols))
	for i, c := range cols {
		out[i] = c.Clone()
	}
	return out
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

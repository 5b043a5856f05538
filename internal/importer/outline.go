package importer

import (
	"bufio"
	"strings"
	"time"

	"github.com/vmunix/medialog/internal/library"
)

// Outline is the parsed form of the two-level text outline format:
//
//	## Collections
//	[[Collection Watchlist]]
//	### Movies
//	[[Heat]]
//	[[Ronin]]
//
// Titles that follow a collection marker belong to that collection.
// This is a convenience input format only; export always produces JSON.
type Outline struct {
	Entries []OutlineEntry
}

// OutlineEntry is a single title, optionally bound to a collection.
type OutlineEntry struct {
	Title      string
	Collection string // empty when the title precedes any marker
}

const collectionMarker = "Collection "

// ParseOutline reads the outline syntax. Lines outside [[...]] brackets
// are structure or commentary and carry no data of their own.
func ParseOutline(text string) Outline {
	var out Outline
	current := ""

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "[[") || !strings.HasSuffix(line, "]]") {
			continue
		}
		inner := strings.TrimSpace(line[2 : len(line)-2])
		if inner == "" {
			continue
		}
		if name, ok := strings.CutPrefix(inner, collectionMarker); ok {
			current = strings.TrimSpace(name)
			continue
		}
		out.Entries = append(out.Entries, OutlineEntry{Title: inner, Collection: current})
	}
	return out
}

// ApplyOutline folds an outline into the store. Titles not already
// present become minimal movie entries for the current year; titles
// under a collection marker join that collection, which is created on
// first use. Returns how many new items and collections were created.
func ApplyOutline(store *library.Store, outline Outline) (newItems, newCollections int) {
	year := time.Now().Year()

	for _, entry := range outline.Entries {
		item, ok := store.FindByTitle(entry.Title)
		if !ok {
			added, err := store.AddMedia(&library.MediaItem{
				Title:       entry.Title,
				Type:        library.TypeMovie,
				Year:        year,
				Description: entry.Title,
				Genres:      []string{},
			})
			if err != nil {
				continue
			}
			item = added
			newItems++
		}

		if entry.Collection == "" {
			continue
		}
		col, ok := store.FindCollectionByName(entry.Collection)
		var colID string
		if ok {
			colID = col.ID
		} else {
			id, err := store.CreateCollection(entry.Collection, "")
			if err != nil {
				continue
			}
			colID = id
			newCollections++
		}
		store.AddToCollection(colID, item.ID)
	}
	return newItems, newCollections
}

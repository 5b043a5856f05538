// Package importer handles the library's file import and export formats.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vmunix/medialog/internal/library"
)

// ErrFormat indicates the input is not in the expected format.
var ErrFormat = errors.New("invalid import format")

// DecodeItems parses a JSON export. The input must be a JSON array;
// anything else is rejected wholesale. Structurally malformed elements
// (wrong field types) are dropped and counted; semantic validation
// (required fields) happens in the store's ImportMedia.
func DecodeItems(data []byte) (items []*library.MediaItem, dropped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("expected a JSON array: %w", ErrFormat)
	}

	for _, r := range raw {
		item := &library.MediaItem{}
		if err := json.Unmarshal(r, item); err != nil {
			dropped++
			continue
		}
		items = append(items, item)
	}
	return items, dropped, nil
}

// ExportJSON serializes the item list as indented JSON, the format
// DecodeItems round-trips with ids preserved.
func ExportJSON(items []*library.MediaItem) ([]byte, error) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ExportFilename returns the conventional export filename for a date,
// e.g. mediatracker_export_2026-08-30.json.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("mediatracker_export_%s.json", t.Format("2006-01-02"))
}

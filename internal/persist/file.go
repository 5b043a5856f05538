package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmunix/medialog/internal/library"
)

// File stores the snapshot as a pretty-printed JSON document on disk.
// Writes go through a temp file and rename so a crash mid-save never
// leaves a truncated library behind.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file provider writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load(_ context.Context) (library.Snapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return library.Snapshot{}, false, nil
	}
	if err != nil {
		return library.Snapshot{}, false, fmt.Errorf("read %s: %w", f.path, err)
	}

	var snap library.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return library.Snapshot{}, false, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return snap, true, nil
}

func (f *File) Save(_ context.Context, snap library.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

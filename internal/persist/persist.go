// Package persist implements the storage backends for library snapshots.
//
// Three interchangeable providers exist: Memory (ephemeral), File
// (a JSON document), and SQLite (a relational store). Deployments pick
// one via configuration; the library store is storage-agnostic.
package persist

import (
	"context"
	"sync"

	"github.com/vmunix/medialog/internal/library"
)

// Memory holds snapshots in process memory. Used for tests and for
// running the daemon without durable state.
type Memory struct {
	mu   sync.Mutex
	snap library.Snapshot
	ok   bool
}

// NewMemory creates an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith creates an in-memory provider pre-populated with a snapshot.
func NewMemoryWith(snap library.Snapshot) *Memory {
	return &Memory{snap: snap, ok: true}
}

func (m *Memory) Load(_ context.Context) (library.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, m.ok, nil
}

func (m *Memory) Save(_ context.Context, snap library.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.ok = true
	return nil
}

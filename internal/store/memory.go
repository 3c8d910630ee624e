// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"sync"

	"github.com/pdiddy/biblioscope/pkg/types"
)

// Memory is a map-backed Store for tests and ephemeral sessions.
type Memory struct {
	mu      sync.Mutex
	records map[string]types.Metadata
	order   []string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]types.Metadata)}
}

// Get implements Store.
func (m *Memory) Get(id string) (types.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return types.Metadata{}, ErrNotFound
	}
	return rec, nil
}

// PutIfAbsent implements Store.
func (m *Memory) PutIfAbsent(rec types.Metadata) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; ok {
		return false, nil
	}
	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return true, nil
}

// SetFavorite implements Store.
func (m *Memory) SetFavorite(id string, v bool) error {
	return m.setTag(id, func(t *types.Tags) { t.IsFavorite = v })
}

// SetDeadEnd implements Store.
func (m *Memory) SetDeadEnd(id string, v bool) error {
	return m.setTag(id, func(t *types.Tags) { t.IsDeadEnd = v })
}

func (m *Memory) setTag(id string, set func(*types.Tags)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	set(&rec.Tags)
	m.records[id] = rec
	return nil
}

// List implements Store.
func (m *Memory) List() ([]types.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Metadata, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

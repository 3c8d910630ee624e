// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists discovered catalog records keyed by identifier.
// Inserts are idempotent and never overwrite: the first extraction of a
// record wins, and user-set tags survive repeated visits to the same
// identifier. Two backends exist, an in-memory map and a SQLite file.
package store

import (
	"errors"

	"github.com/pdiddy/biblioscope/pkg/types"
)

// ErrNotFound is returned when a tag operation references an identifier
// absent from the store.
var ErrNotFound = errors.New("record not found")

// Store is the document store contract the core depends on.
type Store interface {
	// Get returns the stored record for id or ErrNotFound.
	Get(id string) (types.Metadata, error)

	// PutIfAbsent inserts rec only when its ID is not already present and
	// reports whether an insert occurred. An existing entry is left
	// untouched, tags included.
	PutIfAbsent(rec types.Metadata) (bool, error)

	// SetFavorite updates the favorite tag on an existing record.
	SetFavorite(id string, v bool) error

	// SetDeadEnd updates the dead-end tag on an existing record.
	SetDeadEnd(id string, v bool) error

	// List returns all stored records in insertion order.
	List() ([]types.Metadata, error)

	// Close releases backend resources.
	Close() error
}

// ToggleFavorite flips the favorite tag on id and returns the new value.
func ToggleFavorite(s Store, id string) (bool, error) {
	rec, err := s.Get(id)
	if err != nil {
		return false, err
	}
	v := !rec.Tags.IsFavorite
	if err := s.SetFavorite(id, v); err != nil {
		return false, err
	}
	return v, nil
}

// ToggleDeadEnd flips the dead-end tag on id and returns the new value.
func ToggleDeadEnd(s Store, id string) (bool, error) {
	rec, err := s.Get(id)
	if err != nil {
		return false, err
	}
	v := !rec.Tags.IsDeadEnd
	if err := s.SetDeadEnd(id, v); err != nil {
		return false, err
	}
	return v, nil
}

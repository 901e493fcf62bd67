// Package memstore provides an in-memory relgen.Store.
//
// Content is copied on the way in and out, so callers may reuse their
// buffers. The store is safe for concurrent use.
package memstore

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/syssam/relgen"
)

// ErrDuplicateKey is returned by Create when the key is already taken.
var ErrDuplicateKey = errors.New("memstore: duplicate key")

// Store is an in-memory document store.
type Store struct {
	mu   sync.RWMutex
	rows map[string]map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{rows: make(map[string]map[string][]byte)}
}

// Create implements relgen.Store.
func (s *Store) Create(ctx context.Context, collection, key string, content []byte) (relgen.Ref, error) {
	if err := ctx.Err(); err != nil {
		return relgen.Ref{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.rows[collection]
	if !ok {
		rows = make(map[string][]byte)
		s.rows[collection] = rows
	}
	if _, ok := rows[key]; ok {
		return relgen.Ref{}, ErrDuplicateKey
	}
	rows[key] = slices.Clone(content)
	return relgen.Ref{Collection: collection, Key: key}, nil
}

// Select implements relgen.Store.
func (s *Store) Select(ctx context.Context, collection, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.rows[collection][key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(content), true, nil
}

// Update implements relgen.Store.
func (s *Store) Update(ctx context.Context, collection, key string, content []byte) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows[collection]
	if _, ok := rows[key]; !ok {
		return nil, false, nil
	}
	rows[key] = slices.Clone(content)
	return slices.Clone(content), true, nil
}

// Len returns the number of rows in the collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows[collection])
}

// Collections returns the names of the non-empty collections, sorted.
func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.rows))
	for name, rows := range s.rows {
		if len(rows) > 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

var _ relgen.Store = (*Store)(nil)

// Package memstore is an in-memory store.Store, used for tests and for
// simulation runs that don't need durability.
package memstore

import (
	"sync"

	"github.com/abdoElHodaky/orderbook-engine/internal/store"
)

// Store is a map-backed, mutex-guarded store.Store implementation.
type Store struct {
	mu   sync.RWMutex
	bids map[string]store.Record
	asks map[string]store.Record
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		bids: make(map[string]store.Record),
		asks: make(map[string]store.Record),
	}
}

func (s *Store) collection(side store.Side) map[string]store.Record {
	if side == store.SideBid {
		return s.bids
	}
	return s.asks
}

func (s *Store) Insert(side store.Side, rec store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(side)
	if _, exists := c[rec.ID]; exists {
		return store.ErrDuplicateID
	}
	c[rec.ID] = rec
	return nil
}

func (s *Store) Get(side store.Side, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collection(side)[id]
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *Store) Upsert(side store.Side, rec store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection(side)[rec.ID] = rec
	return nil
}

func (s *Store) Remove(side store.Side, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collection(side), id)
	return nil
}

func (s *Store) Scan(side store.Side) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collection(side)
	out := make([]store.Record, 0, len(c))
	for _, rec := range c {
		out = append(out, rec)
	}
	return out, nil
}

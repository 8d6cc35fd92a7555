// Package cache holds the short-lived book-snapshot cache the HTTP
// query surface consults to absorb duplicate polling.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
)

const bookKey = "book"

// SnapshotCache caches a single Book for a short TTL. Any successful
// mutating engine call (Bid, Ask, Match) must invalidate it so a stale
// snapshot is never served across a mutation.
type SnapshotCache struct {
	c *gocache.Cache
}

// New returns a SnapshotCache whose entries expire after ttl.
func New(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{c: gocache.New(ttl, 2*ttl)}
}

// Get returns the cached book, if any and not expired.
func (s *SnapshotCache) Get() (orderbook.Book, bool) {
	v, ok := s.c.Get(bookKey)
	if !ok {
		return orderbook.Book{}, false
	}
	return v.(orderbook.Book), true
}

// Set stores book under the default TTL.
func (s *SnapshotCache) Set(book orderbook.Book) {
	s.c.SetDefault(bookKey, book)
}

// Invalidate drops any cached snapshot.
func (s *SnapshotCache) Invalidate() {
	s.c.Delete(bookKey)
}

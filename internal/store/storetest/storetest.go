// Package storetest holds a conformance suite shared by every
// store.Store implementation, so memstore and boltstore are held to the
// exact same contract.
package storetest

import (
	"testing"

	"github.com/abdoElHodaky/orderbook-engine/internal/store"
)

// Run exercises the store.Store contract against a freshly created
// store from newStore.
func Run(t *testing.T, newStore func() store.Store) {
	t.Helper()

	t.Run("insert and get round-trip", func(t *testing.T) {
		s := newStore()
		rec := store.Record{ID: "b1", Bytes: []byte("payload")}
		if err := s.Insert(store.SideBid, rec); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		got, err := s.Get(store.SideBid, "b1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(got.Bytes) != "payload" {
			t.Fatalf("Bytes = %q, want %q", got.Bytes, "payload")
		}
	})

	t.Run("duplicate insert rejected", func(t *testing.T) {
		s := newStore()
		rec := store.Record{ID: "a1", Bytes: []byte("x")}
		if err := s.Insert(store.SideAsk, rec); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if err := s.Insert(store.SideAsk, rec); err != store.ErrDuplicateID {
			t.Fatalf("err = %v, want ErrDuplicateID", err)
		}
	})

	t.Run("get missing returns ErrNotFound", func(t *testing.T) {
		s := newStore()
		if _, err := s.Get(store.SideBid, "missing"); err != store.ErrNotFound {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("sides are independent", func(t *testing.T) {
		s := newStore()
		if err := s.Insert(store.SideBid, store.Record{ID: "x", Bytes: []byte("bid")}); err != nil {
			t.Fatalf("Insert bid: %v", err)
		}
		if err := s.Insert(store.SideAsk, store.Record{ID: "x", Bytes: []byte("ask")}); err != nil {
			t.Fatalf("Insert ask: %v", err)
		}
		bid, _ := s.Get(store.SideBid, "x")
		ask, _ := s.Get(store.SideAsk, "x")
		if string(bid.Bytes) != "bid" || string(ask.Bytes) != "ask" {
			t.Fatalf("sides collided: bid=%q ask=%q", bid.Bytes, ask.Bytes)
		}
	})

	t.Run("upsert replaces", func(t *testing.T) {
		s := newStore()
		_ = s.Insert(store.SideBid, store.Record{ID: "b1", Bytes: []byte("v1")})
		if err := s.Upsert(store.SideBid, store.Record{ID: "b1", Bytes: []byte("v2")}); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		got, _ := s.Get(store.SideBid, "b1")
		if string(got.Bytes) != "v2" {
			t.Fatalf("Bytes = %q, want v2", got.Bytes)
		}
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		s := newStore()
		_ = s.Insert(store.SideAsk, store.Record{ID: "a1", Bytes: []byte("v")})
		if err := s.Remove(store.SideAsk, "a1"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if err := s.Remove(store.SideAsk, "a1"); err != nil {
			t.Fatalf("second Remove: %v", err)
		}
		if _, err := s.Get(store.SideAsk, "a1"); err != store.ErrNotFound {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("scan returns all records for a side", func(t *testing.T) {
		s := newStore()
		_ = s.Insert(store.SideBid, store.Record{ID: "b1", Bytes: []byte("1")})
		_ = s.Insert(store.SideBid, store.Record{ID: "b2", Bytes: []byte("2")})
		_ = s.Insert(store.SideAsk, store.Record{ID: "a1", Bytes: []byte("3")})

		bids, err := s.Scan(store.SideBid)
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if len(bids) != 2 {
			t.Fatalf("len(bids) = %d, want 2", len(bids))
		}
	})
}

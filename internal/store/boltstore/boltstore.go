// Package boltstore is a durable store.Store backed by a single bbolt
// file, with one bucket per side. Keys are the UTF-8 bytes of the
// order id.
package boltstore

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/abdoElHodaky/orderbook-engine/internal/store"
)

var (
	bucketBids = []byte("bids")
	bucketAsks = []byte("asks")
)

// Store wraps a *bbolt.DB.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if absent) a bbolt file at path and ensures both
// side buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("boltstore: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketBids); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketAsks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("boltstore: init buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt file.
func (s *Store) Close() error { return s.db.Close() }

func bucketFor(side store.Side) []byte {
	if side == store.SideBid {
		return bucketBids
	}
	return bucketAsks
}

func (s *Store) Insert(side store.Side, rec store.Record) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFor(side))
		if b.Get([]byte(rec.ID)) != nil {
			return store.ErrDuplicateID
		}
		return b.Put([]byte(rec.ID), rec.Bytes)
	})
}

func (s *Store) Get(side store.Side, id string) (store.Record, error) {
	var rec store.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFor(side))
		raw := b.Get([]byte(id))
		if raw == nil {
			return store.ErrNotFound
		}
		// bbolt's Get buffer is only valid inside the transaction; copy it.
		buf := make([]byte, len(raw))
		copy(buf, raw)
		rec = store.Record{ID: id, Bytes: buf}
		return nil
	})
	return rec, err
}

func (s *Store) Upsert(side store.Side, rec store.Record) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFor(side)).Put([]byte(rec.ID), rec.Bytes)
	})
}

func (s *Store) Remove(side store.Side, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFor(side)).Delete([]byte(id))
	})
}

func (s *Store) Scan(side store.Side) ([]store.Record, error) {
	var out []store.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFor(side))
		return b.ForEach(func(k, v []byte) error {
			buf := make([]byte, len(v))
			copy(buf, v)
			out = append(out, store.Record{ID: string(k), Bytes: buf})
			return nil
		})
	})
	return out, err
}

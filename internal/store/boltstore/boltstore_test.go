package boltstore

import (
	"path/filepath"
	"testing"

	"github.com/abdoElHodaky/orderbook-engine/internal/store"
	"github.com/abdoElHodaky/orderbook-engine/internal/store/storetest"
)

func TestBoltstoreConformance(t *testing.T) {
	storetest.Run(t, func() store.Store {
		dir := t.TempDir()
		s, err := Open(filepath.Join(dir, "orderbook.db"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	})
}

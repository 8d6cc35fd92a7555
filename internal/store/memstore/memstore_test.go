package memstore

import (
	"testing"

	"github.com/abdoElHodaky/orderbook-engine/internal/store"
	"github.com/abdoElHodaky/orderbook-engine/internal/store/storetest"
)

func TestMemstoreConformance(t *testing.T) {
	storetest.Run(t, func() store.Store { return New() })
}

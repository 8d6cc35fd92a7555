package orderbook

import "github.com/abdoElHodaky/orderbook-engine/internal/quantity"

// Config is the engine's immutable construction-time configuration.
// BaseDenom and QuoteDenom must differ; Admin is the sole principal
// permitted to trigger a sweep and forbidden from placing orders.
type Config struct {
	Admin         string
	BaseDenom     string
	QuoteDenom    string
	BaseIncrement quantity.Amount
}

// DefaultBaseIncrement is the default base-unit increment I=10^9.
func DefaultBaseIncrement() quantity.Amount {
	return quantity.FromUint64(1_000_000_000)
}

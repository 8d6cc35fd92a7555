package orderbook

import "github.com/abdoElHodaky/orderbook-engine/internal/quantity"

// Transfer is a single value movement the engine asks an external
// "bank" collaborator to apply. The engine never moves value itself.
type Transfer struct {
	To     string
	Amount quantity.Amount
	Denom  string
}

// Attribute is a single audit entry.
type Attribute struct {
	Key   string
	Value string
}

// MatchResult is the ordered output of a sweep.
type MatchResult struct {
	Transfers  []Transfer
	Attributes []Attribute
}

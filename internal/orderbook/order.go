package orderbook

import (
	"encoding/json"

	"github.com/abdoElHodaky/orderbook-engine/internal/quantity"
	"github.com/abdoElHodaky/orderbook-engine/internal/store"
)

// Side distinguishes a Bid from an Ask.
type Side string

const (
	Bid Side = "bid"
	Ask Side = "ask"
)

func (s Side) storeSide() store.Side {
	if s == Bid {
		return store.SideBid
	}
	return store.SideAsk
}

// Coin is a single denominated amount, the unit ingest validates
// "exactly one" of.
type Coin struct {
	Denom  string
	Amount quantity.Amount
}

// Order is the immutable identity plus mutable residuals of a single
// Bid or Ask. Field order is fixed and drives the canonical JSON
// encoding the store persists.
type Order struct {
	ID            string          `json:"id"`
	Side          Side            `json:"side"`
	Price         quantity.Amount `json:"price"`
	Submitter     string          `json:"submitter"`
	Ts            int64           `json:"ts"`
	Funds         quantity.Amount `json:"funds"`
	FundsDenom    string          `json:"funds_denom"`
	Proceeds      quantity.Amount `json:"proceeds"`
	ProceedsDenom string          `json:"proceeds_denom"`
}

// Closed reports whether the order has neither funds left to give nor
// proceeds left to receive.
func (o Order) Closed() bool {
	return o.Funds.IsZero() && o.Proceeds.IsZero()
}

// encodeOrder renders an Order to its canonical store.Record bytes. Struct
// field order is fixed above, so the same Order always produces the
// same bytes.
func encodeOrder(o Order) (store.Record, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return store.Record{}, err
	}
	return store.Record{ID: o.ID, Bytes: b}, nil
}

func decodeOrder(rec store.Record) (Order, error) {
	var o Order
	if err := json.Unmarshal(rec.Bytes, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

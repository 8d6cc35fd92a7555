package orderbook

import (
	"errors"

	"github.com/abdoElHodaky/orderbook-engine/internal/store"
)

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, store.ErrDuplicateID)
}

// getOrder reads and decodes a single order. It returns store.ErrNotFound
// unchanged so callers can distinguish "absent" from other failures.
func (e *Engine) getOrder(side Side, id string) (Order, error) {
	rec, err := e.store.Get(side.storeSide(), id)
	if err != nil {
		if isNotFound(err) {
			return Order{}, err
		}
		return Order{}, wrapStoreError(err)
	}
	order, err := decodeOrder(rec)
	if err != nil {
		return Order{}, wrapStoreError(err)
	}
	return order, nil
}

// putOrder inserts a brand-new order, failing with DuplicateIDError if
// one already exists.
func (e *Engine) putOrder(o Order) error {
	rec, err := encodeOrder(o)
	if err != nil {
		return wrapStoreError(err)
	}
	if err := e.store.Insert(o.Side.storeSide(), rec); err != nil {
		if isDuplicate(err) {
			return &DuplicateIDError{ID: o.ID}
		}
		return wrapStoreError(err)
	}
	return nil
}

// commitOrder persists the post-trade state of an order: removed if
// closed, rewritten otherwise.
func (e *Engine) commitOrder(o Order) error {
	if o.Closed() {
		if err := e.store.Remove(o.Side.storeSide(), o.ID); err != nil {
			return wrapStoreError(err)
		}
		return nil
	}
	rec, err := encodeOrder(o)
	if err != nil {
		return wrapStoreError(err)
	}
	if err := e.store.Upsert(o.Side.storeSide(), rec); err != nil {
		return wrapStoreError(err)
	}
	return nil
}

// scanOrders reads and decodes every order on a side.
func (e *Engine) scanOrders(side Side) ([]Order, error) {
	recs, err := e.store.Scan(side.storeSide())
	if err != nil {
		return nil, wrapStoreError(err)
	}
	out := make([]Order, 0, len(recs))
	for _, rec := range recs {
		o, err := decodeOrder(rec)
		if err != nil {
			return nil, wrapStoreError(err)
		}
		out = append(out, o)
	}
	return out, nil
}

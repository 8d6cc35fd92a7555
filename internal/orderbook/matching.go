package orderbook

import (
	"fmt"

	"github.com/abdoElHodaky/orderbook-engine/internal/quantity"
)

// Match runs one admin-triggered sweep. now is read exactly once from
// the clock and used for every "in-current-tick" exclusion test. The
// sweep walks asks price-time and, for each, walks eligible bids
// price-time, committing every matched pair to the store before moving
// on to the next pair.
func (e *Engine) Match(sender string) (MatchResult, error) {
	if sender != e.cfg.Admin {
		return MatchResult{}, ErrUnauthorized
	}

	e.sweepMu.Lock()
	defer e.sweepMu.Unlock()

	now := e.clock.NowUnix()

	asks, err := e.scanOrders(Ask)
	if err != nil {
		return MatchResult{}, err
	}
	asks = excludeCurrentTick(asks, now)
	priceTimeOrder(asks)

	bids, err := e.scanOrders(Bid)
	if err != nil {
		return MatchResult{}, err
	}
	bids = excludeCurrentTick(bids, now)
	priceTimeOrder(bids)

	result := MatchResult{}

	for ai := range asks {
		ask := asks[ai]

		for bi := range bids {
			if ask.Closed() {
				break
			}
			bid := bids[bi]
			if bid.Closed() {
				continue
			}
			if bid.Price.LessThan(ask.Price) {
				// bids are price-time sorted highest-first, so once one
				// bid fails the cross test every later bid does too.
				break
			}

			transfers, updatedBid, updatedAsk, err := matchPair(bid, ask)
			if err != nil {
				return MatchResult{}, err
			}

			if err := e.commitOrder(updatedBid); err != nil {
				return MatchResult{}, err
			}
			if err := e.commitOrder(updatedAsk); err != nil {
				return MatchResult{}, err
			}

			bids[bi] = updatedBid
			ask = updatedAsk

			result.Transfers = append(result.Transfers, transfers...)
			result.Attributes = append(result.Attributes, Attribute{
				Key:   "orderbook.match",
				Value: fmt.Sprintf("bid:%s,ask:%s", updatedBid.ID, updatedAsk.ID),
			})
		}

		asks[ai] = ask
	}

	return result, nil
}

// excludeCurrentTick drops orders that arrived in the current tick:
// an order is only eligible for matching once at least one tick has
// passed since it was placed.
func excludeCurrentTick(orders []Order, now int64) []Order {
	out := orders[:0:0]
	for _, o := range orders {
		if o.Ts < now {
			out = append(out, o)
		}
	}
	return out
}

// matchPair executes the two-phase settlement against copies of bid
// and ask, returning the transfers emitted and the post-trade orders.
// It does not touch the store; the caller commits.
func matchPair(bid, ask Order) (transfers []Transfer, updatedBid, updatedAsk Order, err error) {
	if bid.Closed() {
		return nil, bid, ask, ErrBidClosed
	}
	if ask.Closed() {
		return nil, bid, ask, ErrAskClosed
	}
	if bid.Price.LessThan(ask.Price) {
		return nil, bid, ask, fmt.Errorf("orderbook: match_pair called without a price cross")
	}

	// Phase 1 — pay the asker in quote.
	pay := quantity.Min(ask.Proceeds, bid.Funds)
	if bid.Funds, err = quantity.CheckedSub(bid.Funds, pay); err != nil {
		return nil, bid, ask, err
	}
	if ask.Proceeds, err = quantity.CheckedSub(ask.Proceeds, pay); err != nil {
		return nil, bid, ask, err
	}
	if !pay.IsZero() {
		transfers = append(transfers, Transfer{To: ask.Submitter, Amount: pay, Denom: ask.ProceedsDenom})
	}

	// Phase 2 — deliver to the bidder in base.
	deliver := quantity.Min(bid.Proceeds, ask.Funds)
	if ask.Funds, err = quantity.CheckedSub(ask.Funds, deliver); err != nil {
		return nil, bid, ask, err
	}
	if bid.Proceeds, err = quantity.CheckedSub(bid.Proceeds, deliver); err != nil {
		return nil, bid, ask, err
	}
	if !deliver.IsZero() {
		transfers = append(transfers, Transfer{To: bid.Submitter, Amount: deliver, Denom: bid.ProceedsDenom})
	}

	// Residual refund: the ask was fully paid but still holds base that
	// wasn't needed to cover its proceeds target at the crossing price.
	if ask.Proceeds.IsZero() && !ask.Funds.IsZero() {
		transfers = append(transfers, Transfer{To: ask.Submitter, Amount: ask.Funds, Denom: ask.FundsDenom})
		ask.Funds = quantity.Zero()
	}

	return transfers, bid, ask, nil
}

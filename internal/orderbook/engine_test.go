package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdoElHodaky/orderbook-engine/internal/clock"
	"github.com/abdoElHodaky/orderbook-engine/internal/quantity"
	"github.com/abdoElHodaky/orderbook-engine/internal/store/memstore"
)

const (
	testAdmin = "A"
	testBase  = "nhash"
	testQuote = "stablecoin"
)

func newTestEngine(now int64) *Engine {
	cfg := Config{
		Admin:         testAdmin,
		BaseDenom:     testBase,
		QuoteDenom:    testQuote,
		BaseIncrement: quantity.FromUint64(1_000_000_000),
	}
	return New(cfg, memstore.New(), clock.Fixed(now))
}

func amt(n uint64) quantity.Amount { return quantity.FromUint64(n) }

func u64(t *testing.T, a quantity.Amount) uint64 {
	t.Helper()
	v, ok := a.Uint64()
	require.True(t, ok, "amount does not fit in uint64")
	return v
}

func TestBidPersistedAndReadable(t *testing.T) {
	e := newTestEngine(0)

	_, err := e.Bid(BidRequest{
		ID: "b1", Price: amt(1), Sender: "u",
		Funds: []Coin{{Denom: testQuote, Amount: amt(10)}}, ArrivalTS: 0,
	})
	require.NoError(t, err)

	bids, err := e.GetBids()
	require.NoError(t, err)
	require.Len(t, bids, 1)
	b := bids[0]
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, uint64(1), u64(t, b.Price))
	assert.Equal(t, uint64(10), u64(t, b.Funds))
	assert.Equal(t, uint64(10_000_000_000), u64(t, b.Proceeds))
	assert.Equal(t, testQuote, b.FundsDenom)
}

func TestAskPersistedAndReadable(t *testing.T) {
	e := newTestEngine(0)

	_, err := e.Ask(AskRequest{
		ID: "a1", Price: amt(1), Sender: "v",
		Funds: []Coin{{Denom: testBase, Amount: amt(10_000_000_000)}}, ArrivalTS: 0,
	})
	require.NoError(t, err)

	asks, err := e.GetAsks()
	require.NoError(t, err)
	require.Len(t, asks, 1)
	a := asks[0]
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, uint64(10_000_000_000), u64(t, a.Funds))
	assert.Equal(t, uint64(10), u64(t, a.Proceeds))
	assert.Equal(t, testBase, a.FundsDenom)
}

func TestMatchDirectFill(t *testing.T) {
	e := newTestEngine(0)
	_, err := e.Bid(BidRequest{ID: "b1", Price: amt(1), Sender: "u", Funds: []Coin{{Denom: testQuote, Amount: amt(10)}}, ArrivalTS: 0})
	require.NoError(t, err)
	_, err = e.Ask(AskRequest{ID: "a1", Price: amt(1), Sender: "v", Funds: []Coin{{Denom: testBase, Amount: amt(10_000_000_000)}}, ArrivalTS: 0})
	require.NoError(t, err)

	e.clock = clock.Fixed(3)
	result, err := e.Match(testAdmin)
	require.NoError(t, err)

	require.Len(t, result.Transfers, 2)
	assert.Equal(t, Transfer{To: "v", Amount: amt(10), Denom: testQuote}, result.Transfers[0])
	assert.Equal(t, Transfer{To: "u", Amount: amt(10_000_000_000), Denom: testBase}, result.Transfers[1])

	require.Len(t, result.Attributes, 1)
	assert.Equal(t, Attribute{Key: "orderbook.match", Value: "bid:b1,ask:a1"}, result.Attributes[0])

	book, err := e.GetBook()
	require.NoError(t, err)
	assert.Empty(t, book.Bids)
	assert.Empty(t, book.Asks)
}

func TestMatchPartialFillAskUndersupplies(t *testing.T) {
	e := newTestEngine(0)
	_, err := e.Bid(BidRequest{ID: "b1", Price: amt(1), Sender: "u", Funds: []Coin{{Denom: testQuote, Amount: amt(10)}}, ArrivalTS: 0})
	require.NoError(t, err)
	_, err = e.Ask(AskRequest{ID: "a2", Price: amt(1), Sender: "v", Funds: []Coin{{Denom: testBase, Amount: amt(5_000_000_000)}}, ArrivalTS: 0})
	require.NoError(t, err)

	e.clock = clock.Fixed(3)
	result, err := e.Match(testAdmin)
	require.NoError(t, err)

	require.Len(t, result.Transfers, 2)
	assert.Equal(t, Transfer{To: "v", Amount: amt(5), Denom: testQuote}, result.Transfers[0])
	assert.Equal(t, Transfer{To: "u", Amount: amt(5_000_000_000), Denom: testBase}, result.Transfers[1])

	book, err := e.GetBook()
	require.NoError(t, err)
	require.Len(t, book.Bids, 1)
	assert.Equal(t, uint64(5), u64(t, book.Bids[0].Funds))
	assert.Equal(t, uint64(5_000_000_000), u64(t, book.Bids[0].Proceeds))
	assert.Empty(t, book.Asks)
}

func TestMatchPartialFillBidUndersupplies(t *testing.T) {
	e := newTestEngine(0)
	_, err := e.Bid(BidRequest{ID: "b2", Price: amt(1), Sender: "u", Funds: []Coin{{Denom: testQuote, Amount: amt(5)}}, ArrivalTS: 0})
	require.NoError(t, err)
	_, err = e.Ask(AskRequest{ID: "a3", Price: amt(1), Sender: "v", Funds: []Coin{{Denom: testBase, Amount: amt(10_000_000_000)}}, ArrivalTS: 0})
	require.NoError(t, err)

	e.clock = clock.Fixed(3)
	result, err := e.Match(testAdmin)
	require.NoError(t, err)

	require.Len(t, result.Transfers, 2)
	assert.Equal(t, Transfer{To: "v", Amount: amt(5), Denom: testQuote}, result.Transfers[0])
	assert.Equal(t, Transfer{To: "u", Amount: amt(5_000_000_000), Denom: testBase}, result.Transfers[1])

	book, err := e.GetBook()
	require.NoError(t, err)
	assert.Empty(t, book.Bids)
	require.Len(t, book.Asks, 1)
	assert.Equal(t, uint64(5_000_000_000), u64(t, book.Asks[0].Funds))
	assert.Equal(t, uint64(5), u64(t, book.Asks[0].Proceeds))
}

func TestBidRejectsAdminSender(t *testing.T) {
	e := newTestEngine(0)
	_, err := e.Bid(BidRequest{ID: "x", Price: amt(1), Sender: testAdmin, Funds: []Coin{{Denom: testQuote, Amount: amt(10)}}, ArrivalTS: 0})
	assert.ErrorIs(t, err, ErrUnauthorized)

	bids, err := e.GetBids()
	require.NoError(t, err)
	assert.Empty(t, bids)
}

func TestBidRejectsIntegralityFailures(t *testing.T) {
	e := newTestEngine(0)

	_, err := e.Bid(BidRequest{ID: "y", Price: amt(15), Sender: "u", Funds: []Coin{{Denom: testQuote, Amount: amt(1)}}, ArrivalTS: 0})
	var invalidFunds *InvalidFundsError
	require.ErrorAs(t, err, &invalidFunds)
	assert.Equal(t, ReasonPriceDoesNotDivide, invalidFunds.Reason)

	_, err = e.Bid(BidRequest{ID: "z", Price: amt(15), Sender: "u", Funds: []Coin{{Denom: testQuote, Amount: amt(3)}}, ArrivalTS: 0})
	require.ErrorAs(t, err, &invalidFunds)
	assert.Equal(t, ReasonNotBaseIncrement, invalidFunds.Reason)
}

func TestMatchExcludesCurrentTickOrders(t *testing.T) {
	e := newTestEngine(0)
	const arrival = int64(100)
	_, err := e.Bid(BidRequest{ID: "b1", Price: amt(1), Sender: "u", Funds: []Coin{{Denom: testQuote, Amount: amt(10)}}, ArrivalTS: arrival})
	require.NoError(t, err)
	_, err = e.Ask(AskRequest{ID: "a1", Price: amt(1), Sender: "v", Funds: []Coin{{Denom: testBase, Amount: amt(10_000_000_000)}}, ArrivalTS: arrival})
	require.NoError(t, err)

	e.clock = clock.Fixed(arrival)
	result, err := e.Match(testAdmin)
	require.NoError(t, err)
	assert.Empty(t, result.Transfers)
	assert.Empty(t, result.Attributes)

	book, err := e.GetBook()
	require.NoError(t, err)
	assert.Len(t, book.Bids, 1)
	assert.Len(t, book.Asks, 1)

	e.clock = clock.Fixed(arrival + 1)
	result, err = e.Match(testAdmin)
	require.NoError(t, err)
	require.Len(t, result.Transfers, 2)
	require.Len(t, result.Attributes, 1)
}

// Non-admin senders cannot trigger a sweep.
func TestMatchRejectsNonAdminSender(t *testing.T) {
	e := newTestEngine(5)
	_, err := e.Match("not-admin")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// An empty sweep is a no-op: empty output, unchanged store.
func TestMatchEmptySweepIsNoop(t *testing.T) {
	e := newTestEngine(5)
	result, err := e.Match(testAdmin)
	require.NoError(t, err)
	assert.Empty(t, result.Transfers)
	assert.Empty(t, result.Attributes)
}

// Price-time determinism: the same store contents and now produce a
// byte-identical transfer and attribute list, independent of scan order.
func TestMatchIsDeterministicAcrossMultipleEligibleBids(t *testing.T) {
	e := newTestEngine(0)
	_, err := e.Bid(BidRequest{ID: "low", Price: amt(1), Sender: "u1", Funds: []Coin{{Denom: testQuote, Amount: amt(4)}}, ArrivalTS: 0})
	require.NoError(t, err)
	_, err = e.Bid(BidRequest{ID: "high", Price: amt(2), Sender: "u2", Funds: []Coin{{Denom: testQuote, Amount: amt(8)}}, ArrivalTS: 1})
	require.NoError(t, err)
	_, err = e.Ask(AskRequest{ID: "a1", Price: amt(1), Sender: "v", Funds: []Coin{{Denom: testBase, Amount: amt(4_000_000_000)}}, ArrivalTS: 0})
	require.NoError(t, err)

	e.clock = clock.Fixed(10)
	result, err := e.Match(testAdmin)
	require.NoError(t, err)

	// "high" crosses at a better price and arrived later than "low" but
	// price dominates time in the comparator, so it fills first.
	require.Len(t, result.Attributes, 1)
	assert.Equal(t, "bid:high,ask:a1", result.Attributes[0].Value)
}

package orderbook

import (
	"github.com/abdoElHodaky/orderbook-engine/internal/quantity"
)

// BidRequest is the input to Engine.Bid.
type BidRequest struct {
	ID        string
	Price     quantity.Amount
	Sender    string
	Funds     []Coin
	ArrivalTS int64
}

// AskRequest is the input to Engine.Ask.
type AskRequest struct {
	ID        string
	Price     quantity.Amount
	Sender    string
	Funds     []Coin
	ArrivalTS int64
}

// IngestResult carries the audit attribute emitted on a successful
// ingest.
type IngestResult struct {
	Action string
	ID     string
}

func singleCoin(coins []Coin) (Coin, error) {
	if len(coins) != 1 {
		return Coin{}, invalidFunds(ReasonMultipleCoins)
	}
	return coins[0], nil
}

// Bid validates and persists a new bid. Validation runs in a fixed
// order; the first failure wins and no state changes.
func (e *Engine) Bid(req BidRequest) (IngestResult, error) {
	if req.Price.IsZero() {
		return IngestResult{}, ErrInvalidPrice
	}

	coin, err := singleCoin(req.Funds)
	if err != nil {
		return IngestResult{}, err
	}
	if coin.Amount.IsZero() {
		return IngestResult{}, invalidFunds(ReasonZeroAmount)
	}
	if coin.Denom != e.cfg.QuoteDenom {
		return IngestResult{}, invalidFunds(ReasonWrongDenom)
	}

	if req.Sender == e.cfg.Admin {
		return IngestResult{}, ErrUnauthorized
	}

	if _, err := e.getOrder(Bid, req.ID); err == nil {
		return IngestResult{}, &DuplicateIDError{ID: req.ID}
	} else if !isNotFound(err) {
		return IngestResult{}, err
	}

	// Integrality: (funds * I) mod price = 0, and proceeds must be a
	// multiple of I. ProceedsOfBid enforces both sub-conditions but
	// collapses them into one error; callers need to distinguish the two
	// reasons, so we re-derive which one failed.
	proceeds, err := quantity.ProceedsOfBid(coin.Amount, req.Price, e.cfg.BaseIncrement)
	if err != nil {
		return IngestResult{}, bidIntegralityError(coin.Amount, req.Price, e.cfg.BaseIncrement, err)
	}

	order := Order{
		ID:            req.ID,
		Side:          Bid,
		Price:         req.Price,
		Submitter:     req.Sender,
		Ts:            req.ArrivalTS,
		Funds:         coin.Amount,
		FundsDenom:    e.cfg.QuoteDenom,
		Proceeds:      proceeds,
		ProceedsDenom: e.cfg.BaseDenom,
	}
	if err := e.putOrder(order); err != nil {
		return IngestResult{}, err
	}
	return IngestResult{Action: "bid", ID: req.ID}, nil
}

// bidIntegralityError distinguishes the two InvalidFunds sub-reasons
// for a failed bid proceeds computation.
func bidIntegralityError(funds, price, increment quantity.Amount, cause error) error {
	numerator, err := quantity.CheckedMul(funds, increment)
	if err != nil {
		return cause
	}
	_, remainder, err := quantity.CheckedDivMod(numerator, price)
	if err != nil {
		return cause
	}
	if !remainder.IsZero() {
		return invalidFunds(ReasonPriceDoesNotDivide)
	}
	return invalidFunds(ReasonNotBaseIncrement)
}

// Ask validates and persists a new ask.
func (e *Engine) Ask(req AskRequest) (IngestResult, error) {
	if req.Price.IsZero() {
		return IngestResult{}, ErrInvalidPrice
	}

	coin, err := singleCoin(req.Funds)
	if err != nil {
		return IngestResult{}, err
	}
	if coin.Amount.IsZero() {
		return IngestResult{}, invalidFunds(ReasonZeroAmount)
	}
	if coin.Denom != e.cfg.BaseDenom {
		return IngestResult{}, invalidFunds(ReasonWrongDenom)
	}
	if multiple, err := quantity.IsMultipleOf(coin.Amount, e.cfg.BaseIncrement); err != nil {
		return IngestResult{}, err
	} else if !multiple {
		return IngestResult{}, invalidFunds(ReasonNotBaseIncrement)
	}

	if req.Sender == e.cfg.Admin {
		return IngestResult{}, ErrUnauthorized
	}

	if _, err := e.getOrder(Ask, req.ID); err == nil {
		return IngestResult{}, &DuplicateIDError{ID: req.ID}
	} else if !isNotFound(err) {
		return IngestResult{}, err
	}

	proceeds, err := quantity.ProceedsOfAsk(coin.Amount, req.Price, e.cfg.BaseIncrement)
	if err != nil {
		return IngestResult{}, err
	}

	order := Order{
		ID:            req.ID,
		Side:          Ask,
		Price:         req.Price,
		Submitter:     req.Sender,
		Ts:            req.ArrivalTS,
		Funds:         coin.Amount,
		FundsDenom:    e.cfg.BaseDenom,
		Proceeds:      proceeds,
		ProceedsDenom: e.cfg.QuoteDenom,
	}
	if err := e.putOrder(order); err != nil {
		return IngestResult{}, err
	}
	return IngestResult{Action: "ask", ID: req.ID}, nil
}

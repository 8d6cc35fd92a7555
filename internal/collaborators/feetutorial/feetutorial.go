// Package feetutorial skims a configurable fee off a transfer before
// forwarding the remainder to the bank, accumulating the skimmed
// amount for the fee collector.
package feetutorial

import (
	"context"
	"fmt"
	"sync"

	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/bank"
	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
	"github.com/abdoElHodaky/orderbook-engine/internal/quantity"
)

const maxFeeBasisPoints = 2500 // 25%, the upper bound on a sane skim

// Collaborator skims feeBasisPoints/10000 off every transfer it
// processes, crediting feeCollector with the accumulated skim.
type Collaborator struct {
	bank           *bank.Collaborator
	feeCollector   string
	feeBasisPoints uint64

	mu      sync.Mutex
	ledger  quantity.Amount
}

// New builds a Collaborator. feeCollector must differ from any
// merchant address the caller routes transfers to.
func New(b *bank.Collaborator, feeCollector string, feeBasisPoints uint64) (*Collaborator, error) {
	if feeBasisPoints == 0 || feeBasisPoints > maxFeeBasisPoints {
		return nil, fmt.Errorf("feetutorial: fee basis points must be in (0, %d]", maxFeeBasisPoints)
	}
	return &Collaborator{
		bank:           b,
		feeCollector:   feeCollector,
		feeBasisPoints: feeBasisPoints,
		ledger:         quantity.Zero(),
	}, nil
}

// Process skims the fee off t and dispatches both the net transfer to
// t.To and the fee to the configured collector.
func (c *Collaborator) Process(ctx context.Context, t orderbook.Transfer) error {
	if t.To == c.feeCollector {
		return fmt.Errorf("feetutorial: merchant address can't be the fee collection address")
	}

	fee, err := quantity.CheckedMul(t.Amount, quantity.FromUint64(c.feeBasisPoints))
	if err != nil {
		return fmt.Errorf("feetutorial: compute fee: %w", err)
	}
	fee, _, err = quantity.CheckedDivMod(fee, quantity.FromUint64(10_000))
	if err != nil {
		return fmt.Errorf("feetutorial: compute fee: %w", err)
	}

	net, err := quantity.CheckedSub(t.Amount, fee)
	if err != nil {
		return fmt.Errorf("feetutorial: net amount: %w", err)
	}

	if !net.IsZero() {
		if err := c.bank.Dispatch(ctx, orderbook.Transfer{To: t.To, Amount: net, Denom: t.Denom}); err != nil {
			return fmt.Errorf("feetutorial: dispatch net transfer: %w", err)
		}
	}
	if !fee.IsZero() {
		if err := c.bank.Dispatch(ctx, orderbook.Transfer{To: c.feeCollector, Amount: fee, Denom: t.Denom}); err != nil {
			return fmt.Errorf("feetutorial: dispatch fee transfer: %w", err)
		}
		c.mu.Lock()
		c.ledger, _ = quantity.CheckedAdd(c.ledger, fee)
		c.mu.Unlock()
	}
	return nil
}

// Collected returns the cumulative skimmed amount across all processed
// transfers of a single denomination's magnitude (the ledger does not
// track denomination; callers processing multiple denoms should run one
// Collaborator per denomination).
func (c *Collaborator) Collected() quantity.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger
}

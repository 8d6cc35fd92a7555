// Package exchange routes a transfer through the marker collaborator
// for restricted-denom accounting and on to the bank collaborator for
// value movement. It never holds funds itself.
package exchange

import (
	"context"
	"fmt"

	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/bank"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/marker"
	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
)

// Router passes each transfer to the marker collaborator for
// accept/reject accounting and then dispatches it through the bank,
// whatever its denomination.
type Router struct {
	bank   *bank.Collaborator
	marker *marker.Collaborator
}

// New builds a Router over the given bank and marker collaborators.
func New(b *bank.Collaborator, m *marker.Collaborator) *Router {
	return &Router{bank: b, marker: m}
}

// Route validates (if marker-restricted) then dispatches (via the
// bank) a single transfer.
func (r *Router) Route(ctx context.Context, t orderbook.Transfer) error {
	if r.marker != nil {
		// Validate records restricted-marker acceptance/rejection stats; the
		// actual value movement still goes through the bank either way.
		_ = r.marker.Validate(t)
	}
	if err := r.bank.Dispatch(ctx, t); err != nil {
		return fmt.Errorf("exchange: route to bank: %w", err)
	}
	return nil
}

// RouteAll routes every transfer in order, stopping at the first
// failure so a partially dispatched sweep is visible to the caller.
func (r *Router) RouteAll(ctx context.Context, transfers []orderbook.Transfer) error {
	for i, t := range transfers {
		if err := r.Route(ctx, t); err != nil {
			return fmt.Errorf("exchange: transfer %d: %w", i, err)
		}
	}
	return nil
}

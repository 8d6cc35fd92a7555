package orderbook

import (
	"sync"

	"github.com/abdoElHodaky/orderbook-engine/internal/clock"
	"github.com/abdoElHodaky/orderbook-engine/internal/store"
)

// Engine is a pure function of (Store, Clock, Input): almost all state
// lives in the injected Store. The one exception is sweepMu, which
// serializes concurrent Match calls against the same Engine so a
// sweep's scan-compute-commit sequence is never interleaved with
// another sweep's.
type Engine struct {
	cfg     Config
	store   store.Store
	clock   clock.Clock
	sweepMu sync.Mutex
}

// New constructs an Engine bound to st and ck.
func New(cfg Config, st store.Store, ck clock.Clock) *Engine {
	return &Engine{cfg: cfg, store: st, clock: ck}
}

// Config returns the engine's construction-time configuration.
func (e *Engine) Config() Config { return e.cfg }

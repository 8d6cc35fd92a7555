// Package hftdemo turns a bidder's recent settlement prices into an
// advisory margin-eligibility signal. It never blocks or alters core
// matching — Observe only returns the recommendation to its caller; it
// is not written to the audit trail.
package hftdemo

import (
	"sync"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

const movingAverageWindow = 5

// Signal is the advisory output for one bidder.
type Signal struct {
	MovingAverage float64
	Volatility    float64
	MarginEligible bool
}

// Collaborator tracks a rolling settlement-price history per bidder and
// computes a margin-eligibility advisory from it.
type Collaborator struct {
	mu          sync.Mutex
	history     map[string][]float64
	marginFloor float64 // minimum moving-average/volatility ratio to recommend margin
}

// New builds a Collaborator. marginFloor is the minimum
// moving-average-to-volatility ratio required to recommend margin.
func New(marginFloor float64) *Collaborator {
	return &Collaborator{
		history:     make(map[string][]float64),
		marginFloor: marginFloor,
	}
}

// Observe records a settlement price for bidder and returns the
// updated advisory signal.
func (c *Collaborator) Observe(bidder string, settlementPrice float64) Signal {
	c.mu.Lock()
	defer c.mu.Unlock()

	prices := append(c.history[bidder], settlementPrice)
	if len(prices) > 64 {
		prices = prices[len(prices)-64:]
	}
	c.history[bidder] = prices

	if len(prices) < movingAverageWindow {
		return Signal{}
	}

	ma := talib.Sma(prices, movingAverageWindow)
	latestMA := ma[len(ma)-1]
	vol := stat.StdDev(prices, nil)

	eligible := vol > 0 && latestMA/vol >= c.marginFloor
	return Signal{MovingAverage: latestMA, Volatility: vol, MarginEligible: eligible}
}

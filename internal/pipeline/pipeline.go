// Package pipeline runs a match sweep and fans its output out to every
// downstream collaborator: value transfer, audit persistence, the
// live event bus, and the margin-advisory demo.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abdoElHodaky/orderbook-engine/internal/audit"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/exchange"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/feetutorial"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/hftdemo"
	"github.com/abdoElHodaky/orderbook-engine/internal/eventbus"
	"github.com/abdoElHodaky/orderbook-engine/internal/metrics"
	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
	"github.com/abdoElHodaky/orderbook-engine/internal/workerpool"
)

// Coordinator wraps an Engine sweep with the processing every matched
// transfer needs before it's considered settled.
type Coordinator struct {
	engine  *orderbook.Engine
	router  *exchange.Router
	fee     *feetutorial.Collaborator
	hft     *hftdemo.Collaborator
	audit   *audit.Store
	bus     *eventbus.Publisher
	pool    *workerpool.Dispatcher
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New builds a Coordinator. fee may be nil, in which case transfers
// route directly through the exchange router with no skim.
func New(engine *orderbook.Engine, router *exchange.Router, fee *feetutorial.Collaborator, hft *hftdemo.Collaborator, auditStore *audit.Store, bus *eventbus.Publisher, pool *workerpool.Dispatcher, m *metrics.Metrics, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		engine:  engine,
		router:  router,
		fee:     fee,
		hft:     hft,
		audit:   auditStore,
		bus:     bus,
		pool:    pool,
		metrics: m,
		logger:  logger,
	}
}

// Sweep runs one admin-triggered match and processes its output:
// transfers dispatch concurrently through the worker pool, the sweep
// is persisted to the audit trail and published to the event bus, and
// every counterparty's settlement amount feeds the margin advisory.
func (c *Coordinator) Sweep(sender string) (orderbook.MatchResult, error) {
	result, err := c.engine.Match(sender)
	if err != nil {
		return result, err
	}
	if len(result.Transfers) == 0 {
		return result, nil
	}

	collaborator := "exchange"
	if c.fee != nil {
		collaborator = "feetutorial"
	}

	jobs := make([]workerpool.Job, len(result.Transfers))
	for i, t := range result.Transfers {
		t := t
		jobs[i] = workerpool.Job{
			Name: fmt.Sprintf("transfer-%d", i),
			Run: func() error {
				if c.fee != nil {
					return c.fee.Process(context.Background(), t)
				}
				return c.router.Route(context.Background(), t)
			},
		}
	}
	for name, dispatchErr := range c.pool.RunAll(jobs) {
		if dispatchErr != nil {
			c.logger.Error("transfer dispatch failed", zap.String("job", name), zap.Error(dispatchErr))
			c.metrics.CollaboratorFailures.WithLabelValues(collaborator).Inc()
		}
	}

	for _, t := range result.Transfers {
		if amount, ok := t.Amount.Uint64(); ok {
			c.hft.Observe(t.To, float64(amount))
		}
	}

	if c.audit != nil {
		if err := c.audit.RecordSweep(result, time.Now().Unix()); err != nil {
			c.logger.Error("audit record failed", zap.Error(err))
		}
	}
	if c.bus != nil {
		if err := c.bus.PublishMatch(result); err != nil {
			c.logger.Error("event bus publish failed", zap.Error(err))
		}
	}

	return result, nil
}

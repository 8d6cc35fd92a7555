// Command orderbookd runs the order book matching engine as an HTTP
// service: bid/ask ingest, admin-triggered sweeps, live streaming, and
// the downstream settlement/audit/advisory collaborators.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for sqlx
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	httpapi "github.com/abdoElHodaky/orderbook-engine/internal/api/http"
	"github.com/abdoElHodaky/orderbook-engine/internal/api/ws"
	"github.com/abdoElHodaky/orderbook-engine/internal/audit"
	"github.com/abdoElHodaky/orderbook-engine/internal/cache"
	"github.com/abdoElHodaky/orderbook-engine/internal/clock"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/bank"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/exchange"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/feetutorial"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/hftdemo"
	"github.com/abdoElHodaky/orderbook-engine/internal/collaborators/marker"
	"github.com/abdoElHodaky/orderbook-engine/internal/config"
	"github.com/abdoElHodaky/orderbook-engine/internal/eventbus"
	"github.com/abdoElHodaky/orderbook-engine/internal/metrics"
	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
	"github.com/abdoElHodaky/orderbook-engine/internal/pipeline"
	"github.com/abdoElHodaky/orderbook-engine/internal/quantity"
	"github.com/abdoElHodaky/orderbook-engine/internal/store"
	"github.com/abdoElHodaky/orderbook-engine/internal/store/boltstore"
	"github.com/abdoElHodaky/orderbook-engine/internal/store/memstore"
	"github.com/abdoElHodaky/orderbook-engine/internal/workerpool"
)

var configPath = flag.String("config", "", "directory containing config.yaml")

func main() {
	flag.Parse()

	app := fx.New(
		fx.Provide(
			loadConfig,
			config.NewLogger,
			newStore,
			newClock,
			newEngineConfig,
			orderbook.New,
			newMetricsRegistry,
			newRegisterer,
			metrics.New,
			newSnapshotCache,
			newEventBusPublisher,
			newAuditStore,
			newReportingDB,
			audit.NewReporter,
			httpapi.NewReportHandlers,
			newBankCollaborator,
			newMarkerCollaborator,
			exchange.New,
			newFeeCollaborator,
			newHFTCollaborator,
			newWorkerPool,
			fx.Annotate(newCoordinator, fx.As(new(httpapi.Sweeper))),
			httpapi.NewHandlers,
			ws.NewHub,
			newServerConfig,
			httpapi.NewServer,
		),
		fx.Invoke(startMetricsServer, func(*httpapi.Server) {}),
	)
	app.Run()
}

// startMetricsServer exposes the Prometheus registry on its own port,
// independent of the gin router's middleware stack.
func startMetricsServer(lc fx.Lifecycle, cfg *config.Config, reg *prometheus.Registry, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("metrics server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func loadConfig() (*config.Config, error) {
	return config.Load(*configPath)
}

func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store.Driver == "bolt" {
		return boltstore.Open(cfg.Store.BoltPath)
	}
	return memstore.New(), nil
}

func newClock() clock.Clock { return clock.Real{} }

func newEngineConfig(cfg *config.Config) orderbook.Config {
	return orderbook.Config{
		Admin:         cfg.Engine.Admin,
		BaseDenom:     cfg.Engine.BaseDenom,
		QuoteDenom:    cfg.Engine.QuoteDenom,
		BaseIncrement: quantity.FromUint64(cfg.Engine.BaseIncrement),
	}
}

func newMetricsRegistry() *prometheus.Registry { return prometheus.NewRegistry() }

func newRegisterer(reg *prometheus.Registry) prometheus.Registerer { return reg }

func newSnapshotCache() *cache.SnapshotCache {
	return cache.New(snapshotCacheTTL)
}

func newEventBusPublisher(cfg *config.Config, logger *zap.Logger) (*eventbus.Publisher, error) {
	return eventbus.New(cfg.NATS.URL, cfg.NATS.Topic, logger)
}

func newAuditStore(cfg *config.Config) (*audit.Store, error) {
	return audit.Open(cfg.Postgres.DSN)
}

func newReportingDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("orderbookd: reporting db: %w", err)
	}
	return db, nil
}

func newBankCollaborator(cfg *config.Config) *bank.Collaborator {
	return bank.New(cfg.Collaborators.BankURL, cfg.Collaborators.HealthAddr, cfg.Collaborators.AllowedDenoms)
}

func newMarkerCollaborator(cfg *config.Config) *marker.Collaborator {
	return marker.New(cfg.Collaborators.RestrictedDenoms)
}

func newFeeCollaborator(cfg *config.Config, b *bank.Collaborator) (*feetutorial.Collaborator, error) {
	return feetutorial.New(b, cfg.Collaborators.FeeCollector, cfg.Collaborators.FeeBasisPoints)
}

func newHFTCollaborator(cfg *config.Config) *hftdemo.Collaborator {
	return hftdemo.New(cfg.Collaborators.MarginFloor)
}

func newWorkerPool(lc fx.Lifecycle, logger *zap.Logger) (*workerpool.Dispatcher, error) {
	dispatcher, err := workerpool.New(settlementWorkerPoolSize, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			dispatcher.Release()
			return nil
		},
	})
	return dispatcher, nil
}

func newCoordinator(engine *orderbook.Engine, router *exchange.Router, fee *feetutorial.Collaborator, hft *hftdemo.Collaborator, auditStore *audit.Store, bus *eventbus.Publisher, pool *workerpool.Dispatcher, m *metrics.Metrics, logger *zap.Logger) *pipeline.Coordinator {
	return pipeline.New(engine, router, fee, hft, auditStore, bus, pool, m, logger)
}

func newServerConfig(cfg *config.Config) httpapi.ServerConfig {
	return httpapi.ServerConfig{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		JWTSecret:         cfg.Auth.JWTSecret,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
	}
}

const (
	snapshotCacheTTL         = 2 * time.Second
	settlementWorkerPoolSize = 16
)

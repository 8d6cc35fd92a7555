// Package httpapi exposes the engine over a gin REST API: JWT-gated
// admin match, validated ingest, rate-limited query endpoints, and
// generated swagger docs. Responses are not compressed.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/orderbook-engine/internal/api/ws"
	"github.com/abdoElHodaky/orderbook-engine/internal/ratelimit"
)

// ServerConfig is the subset of process configuration the HTTP server
// needs, kept as its own type so fx can inject it unambiguously
// alongside the many other strings and ints in the dependency graph.
type ServerConfig struct {
	Addr              string
	JWTSecret         string
	RequestsPerMinute int
}

// ServerParams are the fx-injected dependencies of Server.
type ServerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *zap.Logger
	Handlers  *Handlers
	Reports   *ReportHandlers
	Hub       *ws.Hub
	Config    ServerConfig
}

// Server is the HTTP listener hosting the REST surface.
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// NewServer builds a gin router with the ambient middleware stack and
// registers lifecycle hooks that start/stop the listener with fx.
func NewServer(p ServerParams) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(p.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(ratelimit.New(p.Config.RequestsPerMinute))

	router.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))
	router.GET("/v1/stream", gin.WrapH(p.Hub))

	p.Handlers.SetBroadcaster(p.Hub)
	p.Handlers.Register(router, AdminAuth(p.Config.JWTSecret))
	p.Reports.Register(router)

	srv := &Server{
		router: router,
		http:   &http.Server{Addr: p.Config.Addr, Handler: router},
		logger: p.Logger,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				p.Logger.Info("starting HTTP server", zap.String("addr", p.Config.Addr))
				if err := srv.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					p.Logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("stopping HTTP server")
			return srv.http.Shutdown(ctx)
		},
	})

	return srv
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

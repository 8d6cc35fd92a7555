package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/orderbook-engine/internal/cache"
	"github.com/abdoElHodaky/orderbook-engine/internal/metrics"
	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
	"github.com/abdoElHodaky/orderbook-engine/internal/quantity"
)

// MatchBroadcaster receives every completed sweep result, fanning it
// out to live subscribers (the websocket stream).
type MatchBroadcaster interface {
	Broadcast(orderbook.MatchResult)
}

// Sweeper runs an admin-triggered match, including whatever downstream
// processing a sweep's transfers need. The production implementation
// is a *pipeline.Coordinator wrapping the engine.
type Sweeper interface {
	Sweep(sender string) (orderbook.MatchResult, error)
}

// Handlers binds the engine to gin routes.
type Handlers struct {
	engine      *orderbook.Engine
	sweeper     Sweeper
	cache       *cache.SnapshotCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
	broadcaster MatchBroadcaster
}

// NewHandlers builds a Handlers bound to engine for ingest/query and
// sweeper for the match endpoint.
func NewHandlers(engine *orderbook.Engine, sweeper Sweeper, snapshotCache *cache.SnapshotCache, m *metrics.Metrics, logger *zap.Logger) *Handlers {
	return &Handlers{engine: engine, sweeper: sweeper, cache: snapshotCache, metrics: m, logger: logger}
}

// SetBroadcaster wires a live subscriber feed. Optional: handlers work
// without one, they just don't fan out match results anywhere.
func (h *Handlers) SetBroadcaster(b MatchBroadcaster) {
	h.broadcaster = b
}

// Register mounts every route onto r. matchAuth, if non-empty, runs
// before the match handler (the admin-JWT gate).
func (h *Handlers) Register(r gin.IRouter, matchAuth ...gin.HandlerFunc) {
	r.POST("/v1/bids", h.postBid)
	r.POST("/v1/asks", h.postAsk)
	r.POST("/v1/match", append(matchAuth, h.postMatch)...)
	r.GET("/v1/bids", h.getBids)
	r.GET("/v1/asks", h.getAsks)
	r.GET("/v1/book", h.getBook)
}

func (h *Handlers) postBid(c *gin.Context) {
	var req bidRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: err.Error()})
		return
	}

	price, err := parseAmount(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: "invalid price"})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: "invalid amount"})
		return
	}

	result, err := h.engine.Bid(orderbook.BidRequest{
		ID:        req.ID,
		Price:     price,
		Sender:    req.Sender,
		Funds:     []orderbook.Coin{{Denom: h.engine.Config().QuoteDenom, Amount: amount}},
		ArrivalTS: req.ArrivalTS,
	})
	h.metrics.IngestTotal.WithLabelValues("bid", outcomeLabel(err)).Inc()
	if err != nil {
		writeEngineError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, ingestResultDTO{Action: result.Action, ID: result.ID})
}

func (h *Handlers) postAsk(c *gin.Context) {
	var req askRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: err.Error()})
		return
	}

	price, err := parseAmount(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: "invalid price"})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: "invalid amount"})
		return
	}

	result, err := h.engine.Ask(orderbook.AskRequest{
		ID:        req.ID,
		Price:     price,
		Sender:    req.Sender,
		Funds:     []orderbook.Coin{{Denom: h.engine.Config().BaseDenom, Amount: amount}},
		ArrivalTS: req.ArrivalTS,
	})
	h.metrics.IngestTotal.WithLabelValues("ask", outcomeLabel(err)).Inc()
	if err != nil {
		writeEngineError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, ingestResultDTO{Action: result.Action, ID: result.ID})
}

func (h *Handlers) postMatch(c *gin.Context) {
	var req matchRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: err.Error()})
		return
	}

	start := time.Now()
	result, err := h.sweeper.Sweep(req.Sender)
	h.metrics.SweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		writeEngineError(c, err)
		return
	}
	h.metrics.TransfersEmittedTotal.Add(float64(len(result.Transfers)))
	h.cache.Invalidate()
	if h.broadcaster != nil {
		h.broadcaster.Broadcast(result)
	}
	c.JSON(http.StatusOK, toMatchResultDTO(result))
}

func (h *Handlers) getBids(c *gin.Context) {
	bids, err := h.engine.GetBids()
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDTOs(bids))
}

func (h *Handlers) getAsks(c *gin.Context) {
	asks, err := h.engine.GetAsks()
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDTOs(asks))
}

func (h *Handlers) getBook(c *gin.Context) {
	if cached, ok := h.cache.Get(); ok {
		h.writeBook(c, toBookDTO(cached))
		return
	}
	book, err := h.engine.GetBook()
	if err != nil {
		writeEngineError(c, err)
		return
	}
	h.cache.Set(book)
	h.writeBook(c, toBookDTO(book))
}

func (h *Handlers) writeBook(c *gin.Context, dto bookDTO) {
	if etag, err := bookETag(dto); err == nil {
		c.Header("ETag", etag)
	}
	c.JSON(http.StatusOK, dto)
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}

// writeEngineError maps the engine's error taxonomy to HTTP status
// codes: Unauthorized->403, InvalidPrice/InvalidFunds->400,
// DuplicateId/BidClosed/AskClosed->409, Overflow/Underflow->422,
// StoreError->503.
func writeEngineError(c *gin.Context, err error) {
	var (
		dup          *orderbook.DuplicateIDError
		invalidFunds *orderbook.InvalidFundsError
		storeErr     *orderbook.StoreError
	)

	switch {
	case errors.Is(err, orderbook.ErrUnauthorized):
		c.JSON(http.StatusForbidden, errorDTO{Error: err.Error()})
	case errors.Is(err, orderbook.ErrInvalidPrice), errors.As(err, &invalidFunds):
		c.JSON(http.StatusBadRequest, errorDTO{Error: err.Error()})
	case errors.As(err, &dup), errors.Is(err, orderbook.ErrBidClosed), errors.Is(err, orderbook.ErrAskClosed):
		c.JSON(http.StatusConflict, errorDTO{Error: err.Error()})
	case errors.Is(err, quantity.ErrOverflow), errors.Is(err, quantity.ErrUnderflow):
		c.JSON(http.StatusUnprocessableEntity, errorDTO{Error: err.Error()})
	case errors.As(err, &storeErr):
		c.JSON(http.StatusServiceUnavailable, errorDTO{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorDTO{Error: err.Error()})
	}
}

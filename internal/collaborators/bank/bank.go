// Package bank dispatches the engine's transfer list to an external
// value-transfer endpoint. A transfer is only forwarded if its
// denomination is on the collaborator's allowlist and the amount is
// nonzero.
package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
)

// Collaborator posts transfers to a configured bank endpoint, breaking
// the circuit after repeated failures so a stalled downstream doesn't
// stack up blocked requests.
type Collaborator struct {
	endpoint      string
	allowedDenoms map[string]bool
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker
	healthAddr    string
}

// New builds a Collaborator posting to endpoint, accepting only the
// given denominations.
func New(endpoint, healthAddr string, allowedDenoms []string) *Collaborator {
	allowed := make(map[string]bool, len(allowedDenoms))
	for _, d := range allowedDenoms {
		allowed[d] = true
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "bank-collaborator",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Collaborator{
		endpoint:      endpoint,
		allowedDenoms: allowed,
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		breaker:       breaker,
		healthAddr:    healthAddr,
	}
}

type dispatchRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// Dispatch forwards a single transfer. Zero-amount transfers never
// reach the engine's output, but a defensive check is kept here since
// this collaborator is an I/O boundary.
func (c *Collaborator) Dispatch(ctx context.Context, t orderbook.Transfer) error {
	if t.Amount.IsZero() {
		return nil
	}
	if !c.allowedDenoms[t.Denom] {
		return fmt.Errorf("bank: unsupported denom %q", t.Denom)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		body, err := json.Marshal(dispatchRequest{To: t.To, Amount: t.Amount.String(), Denom: t.Denom})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("bank: endpoint returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	return err
}

// Healthy probes the bank collaborator's liveness over the standard
// gRPC health-checking protocol, avoiding any hand-authored protobuf
// wire messages for this side-channel check.
func (c *Collaborator) Healthy(ctx context.Context) (bool, error) {
	conn, err := grpc.NewClient(c.healthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return false, fmt.Errorf("bank: dial health endpoint: %w", err)
	}
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return false, fmt.Errorf("bank: health check: %w", err)
	}
	return resp.Status == healthpb.HealthCheckResponse_SERVING, nil
}

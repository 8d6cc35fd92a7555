// Package marker rejects a transfer whose denomination is not on the
// configured restricted-marker allowlist, and exposes a tiny
// gorilla/mux router for local inspection of rejected/accepted counts.
package marker

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
)

// Collaborator validates transfers against a restricted-denom
// allowlist and counts the outcomes. It neither forwards transfers nor
// holds funds itself.
type Collaborator struct {
	mu             sync.Mutex
	restrictedDenoms map[string]bool
	accepted       int
	rejected       int
}

// New builds a Collaborator restricted to the given denominations.
func New(restrictedDenoms []string) *Collaborator {
	denoms := make(map[string]bool, len(restrictedDenoms))
	for _, d := range restrictedDenoms {
		denoms[d] = true
	}
	return &Collaborator{restrictedDenoms: denoms}
}

// Validate returns an error if t's denomination is not restricted-marker
// backed.
func (c *Collaborator) Validate(t orderbook.Transfer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.restrictedDenoms[t.Denom] {
		c.rejected++
		return fmt.Errorf("marker: denom %q is not a restricted marker", t.Denom)
	}
	c.accepted++
	return nil
}

// Router exposes a local-inspection endpoint for accepted/rejected
// counts.
func (c *Collaborator) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/marker/stats", c.handleStats).Methods(http.MethodGet)
	return r
}

type statsResponse struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

func (c *Collaborator) handleStats(w http.ResponseWriter, _ *http.Request) {
	c.mu.Lock()
	resp := statsResponse{Accepted: c.accepted, Rejected: c.rejected}
	c.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

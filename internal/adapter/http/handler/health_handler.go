package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iho/barberledger/internal/adapter/http/dto"
)

// Check is a named readiness probe.
type Check struct {
	Ping func(ctx context.Context) error
	Name string
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	checks  []Check
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 5 * time.Second,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Readiness pings every dependency concurrently and returns 503 when any
// of them fails.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]string, len(h.checks))
		healthy = true
		g       errgroup.Group
	)

	for _, c := range h.checks {
		g.Go(func() error {
			status := "ok"
			if err := c.Ping(ctx); err != nil {
				status = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			results[c.Name] = status
			if status != "ok" {
				healthy = false
			}
			return nil
		})
	}
	_ = g.Wait()

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Checks: results})
		return
	}

	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ready", Checks: results})
}

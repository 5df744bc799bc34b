package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// HealthChecker is implemented by components that can report their health.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckerFunc adapts a ping function to HealthChecker.
type CheckerFunc struct {
	ComponentName string
	Fn            func(ctx context.Context) error
}

// Name returns the component name.
func (c CheckerFunc) Name() string { return c.ComponentName }

// Check runs the ping function.
func (c CheckerFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// HealthObserver receives per-component readiness results.
type HealthObserver interface {
	SetHealth(component string, up bool)
}

// HealthHandler handles liveness and readiness checks.
type HealthHandler struct {
	checkers []HealthChecker
	version  string
	clock    clockwork.Clock
	startAt  time.Time
	observer HealthObserver
	timeout  time.Duration
}

// HealthOption configures a HealthHandler.
type HealthOption func(*HealthHandler)

// WithHealthClock sets the clock used for uptime and latency.
func WithHealthClock(c clockwork.Clock) HealthOption {
	return func(h *HealthHandler) { h.clock = c }
}

// WithHealthObserver reports each readiness result to o.
func WithHealthObserver(o HealthObserver) HealthOption {
	return func(h *HealthHandler) { h.observer = o }
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version string, checkers []HealthChecker, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		checkers: checkers,
		version:  version,
		clock:    clockwork.NewRealClock(),
		timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startAt = h.clock.Now()
	return h
}

// LivenessResponse is the response for the liveness check.
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the response for the readiness check.
type ReadinessResponse struct {
	Status     string                    `json:"status"`
	Components map[string]ComponentCheck `json:"components,omitempty"`
}

// ComponentCheck is the health of a single component.
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness handles GET /healthz. It never checks dependencies.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "alive",
		Version: h.version,
		Uptime:  h.clock.Since(h.startAt).Truncate(time.Second).String(),
	})
}

// Readiness handles GET /readyz. Any unhealthy component yields 503.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if len(h.checkers) == 0 {
		writeJSON(w, http.StatusOK, ReadinessResponse{Status: "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	components := h.checkAll(ctx)
	resp := ReadinessResponse{Status: "ready", Components: components}
	code := http.StatusOK
	for _, c := range components {
		if c.Status != "healthy" {
			resp.Status = "not_ready"
			code = http.StatusServiceUnavailable
			break
		}
	}
	writeJSON(w, code, resp)
}

// checkAll runs all checkers concurrently.
func (h *HealthHandler) checkAll(ctx context.Context) map[string]ComponentCheck {
	results := make(map[string]ComponentCheck, len(h.checkers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, checker := range h.checkers {
		wg.Add(1)
		go func(c HealthChecker) {
			defer wg.Done()

			start := h.clock.Now()
			err := c.Check(ctx)
			cc := ComponentCheck{
				Status:  "healthy",
				Latency: h.clock.Since(start).Truncate(time.Microsecond).String(),
			}
			if err != nil {
				cc.Status = "unhealthy"
				cc.Error = err.Error()
			}
			if h.observer != nil {
				h.observer.SetHealth(c.Name(), err == nil)
			}

			mu.Lock()
			results[c.Name()] = cc
			mu.Unlock()
		}(checker)
	}

	wg.Wait()
	return results
}

//Personal.AI order the ending

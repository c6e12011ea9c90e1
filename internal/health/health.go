// Package health provides the HTTP liveness and readiness handlers served
// next to the Prometheus metrics endpoint during long-running analyses.
//
//   - /healthz — liveness probe; always returns 200 OK.
//   - /readyz  — readiness probe; returns 200 only when every registered
//     [Check] passes (e.g. the run store can reach its database).
//
// Responses are JSON objects with a top-level "status" field ("ok" or
// "fail") and a "checks" map with each named check's result.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// checkTimeout bounds a single readiness check.
const checkTimeout = 5 * time.Second

// Check is a named readiness probe. Probe returns nil when the dependency
// is usable and an error describing the failure otherwise; it must respect
// context cancellation.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// result is the JSON response body for both endpoints.
type result struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler serves /healthz and /readyz. It is safe for concurrent use; the
// check list is fixed at construction time.
type Handler struct {
	checks []Check
}

// New creates a [Handler] that evaluates the given checks, in order, on
// each /readyz request.
func New(checks ...Check) *Handler {
	c := make([]Check, len(checks))
	copy(c, checks)
	return &Handler{checks: c}
}

// Healthz is the liveness probe. A process that can serve HTTP is alive.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, result{Status: "ok"})
}

// Readyz runs every registered [Check] under a [checkTimeout] deadline and
// returns 503 if any of them fails.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.checks))
	allOK := true

	for _, c := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Probe(ctx)
		cancel()

		if err != nil {
			checks[c.Name] = "fail: " + err.Error()
			allOK = false
		} else {
			checks[c.Name] = "ok"
		}
	}

	res := result{Status: "ok", Checks: checks}
	status := http.StatusOK
	if !allOK {
		res.Status = "fail"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, res)
}

// Register adds the /healthz and /readyz routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// writeJSON encodes v with the given status code, falling back to a
// plain-text 500 on encoding failure.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}

package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type storePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	store   storePinger
	backend string
	version string
}

// NewHealthHandler creates a HealthHandler. backend names the store in the
// /health components.
func NewHealthHandler(store storePinger, backend, version string) *HealthHandler {
	return &HealthHandler{store: store, backend: backend, version: version}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when the entry store responds, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	store, _ := h.probe(r.Context())
	writeJSON(w, httpStatus(store.Status), HealthResponse{Status: store.Status, Timestamp: time.Now()})
}

// Health reports the store component with its latency and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	store, _ := h.probe(r.Context())
	writeJSON(w, httpStatus(store.Status), HealthResponse{
		Status:     store.Status,
		Version:    h.version,
		Components: map[string]CompStatus{"store": store},
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) probe(ctx context.Context) (CompStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Backend: h.backend}, err
	}
	return CompStatus{Status: "ok", Backend: h.backend, Latency: time.Since(start).String()}, nil
}

func httpStatus(s string) int {
	if s == "ok" {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

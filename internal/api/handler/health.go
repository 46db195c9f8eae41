package handler

import (
	"context"
	"time"

	"github.com/hszk-dev/monostack/pkg/contract"
)

// HealthHandler reports liveness and process uptime.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler measuring uptime from started.
func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now}
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, _ contract.Empty) (contract.HealthResponse, error) {
	uptime := h.now().Sub(h.started).Seconds()
	if uptime < 0 {
		uptime = 0
	}
	return contract.HealthResponse{
		Status: "ok",
		Uptime: uptime,
	}, nil
}

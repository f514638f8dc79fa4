package handler

import (
	"net/http"
	"time"

	"github.com/nextliferp/accountd/internal/api/apierr"
	"github.com/nextliferp/accountd/internal/api/response"
	"github.com/nextliferp/accountd/internal/dependencies/clock"
	"github.com/nextliferp/accountd/internal/services/gateway"
)

// ServiceName identifies this service in health responses
const ServiceName = "nextliferp"

// HealthHandler handles the health endpoint
type HealthHandler struct {
	gateway *gateway.Service
	clock   clock.Clock
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(gateway *gateway.Service, clock clock.Clock) *HealthHandler {
	return &HealthHandler{
		gateway: gateway,
		clock:   clock,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.gateway.Stats(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:     "online",
		Service:    ServiceName,
		UsersCount: stats.Users,
		Timestamp:  h.clock.Now().Format(time.RFC3339),
	})
}

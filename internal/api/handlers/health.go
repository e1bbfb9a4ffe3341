package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rohits-web03/vybr8r/internal/utils"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

// Health godoc
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Message:     "VYB-R8R API is running",
		Environment: h.environment,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
	})
}

// Liveness is the plain-text probe for load balancers.
func Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

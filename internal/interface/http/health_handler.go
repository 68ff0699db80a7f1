package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fiap-postech/auth-service/pkg/response"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	Service string
}

func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{Service: service}
}

// Check GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   h.Service,
	})
}

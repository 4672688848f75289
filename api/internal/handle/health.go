package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	Service          string `json:"service"`
	Model            string `json:"model"`
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
	Version          string `json:"version"`
	Port             string `json:"port"`
}

// Health never calls upstream.
func (h *Handle) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:           "OK",
		Timestamp:        h.timestamp(h.now()),
		Service:          ServiceName,
		Model:            h.svc.Model(),
		APIKeyConfigured: h.svc.APIKeyConfigured(),
		Version:          Version,
		Port:             h.cfg.Port,
	})
}

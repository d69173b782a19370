package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	season      string
	modelLoaded bool
}

func NewHealthHandler(season string, modelLoaded bool) *HealthHandler {
	return &HealthHandler{
		season:      season,
		modelLoaded: modelLoaded,
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"time":         time.Now().UTC(),
		"service":      "fplmate",
		"season":       h.season,
		"model_loaded": h.modelLoaded,
	})
}

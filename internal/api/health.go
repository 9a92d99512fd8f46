package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

// Index GET /
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Karcher Booking API",
		"version": apiVersion,
		"status":  "running",
		"endpoints": []string{
			"/clients",
			"/bookings",
			"/comments",
			"/availability-by-date",
			"/all-bookings-by-service",
		},
	})
}

// Health GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"cors":      "enabled",
		"origins":   h.origins,
	})
}

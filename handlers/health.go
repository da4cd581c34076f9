// File: concierge/handlers/health.go
package handlers

import (
	"net/http"

	"concierge/utils"

	"github.com/gin-gonic/gin"
)

// RootHandler handles GET /, the service banner.
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hotel Booking AI Agent is running!",
		"status":  "healthy",
	})
}

// HealthHandler handles GET /health with the latest dependency snapshot.
func HealthHandler(c *gin.Context) {
	health := utils.GetHealthStatus()
	status := "ok"
	if !health.Mongo || !health.Redis {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"mongo":     health.Mongo,
		"redis":     health.Redis,
		"checkedAt": health.CheckedAt,
	})
}

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/gin-gonic/gin"
)

const serviceName = "mini-bank-api"

// getHealth godoc
// @Summary Show the status of server.
// @Description Reports liveness and process uptime in seconds.
// @Tags root
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func getHealth(startedAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:        "ok",
			Service:       serviceName,
			UptimeSeconds: now.Sub(startedAt).Seconds(),
			Timestamp:     now.UTC(),
		})
	}
}

// routeNotFound reports unknown routes with the standard error body.
func routeNotFound(c *gin.Context) {
	_ = c.Error(apperrors.NotFound(apperrors.CodeRouteNotFound,
		fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path), nil))
}

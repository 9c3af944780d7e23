package handlers

import (
	"time"

	"lexcase/internal/config"
	"lexcase/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var startedAt = time.Now()

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports service and database health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Success: false,
			Message: "Service degraded",
			Data: fiber.Map{
				"database": dbStatus,
				"uptime":   time.Since(startedAt).String(),
			},
		})
	}

	return response.Success(c, "Service healthy", fiber.Map{
		"database": dbStatus,
		"uptime":   time.Since(startedAt).String(),
	})
}

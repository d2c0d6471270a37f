package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gemstonesdb/internal/logger"
	"github.com/localnerve/gemstonesdb/internal/services"
	"gorm.io/gorm"
)

// HealthHandler reports database reachability and table counts
type HealthHandler struct {
	DB  *gorm.DB
	Log *logger.Logger
}

// GetHealth handles GET /health
// @Summary Database health
// @Description Ping the database and report row counts of users, gemstones, reviews and user_gemstones
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Failure 504 {object} utils.ErrorResponseStruct
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.DB, h.Log)

	status := fiber.StatusOK
	if !result.Healthy() {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(result)
}

package services

import (
	"context"
	"fmt"

	"github.com/localnerve/gemstonesdb/internal/logger"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Counts       *Counts           `json:"counts,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings the database and reports table counts
func HealthCheck(ctx context.Context, db *gorm.DB, log *logger.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Warn("Health check failed - database connection", "error", err)
		return result
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Warn("Health check failed - database ping", "error", err)
		return result
	}
	result.Database = "ok"
	result.Details["database_dialect"] = db.Dialector.Name()

	counts, err := CountAll(ctx, db)
	if err != nil {
		result.Status = "unhealthy"
		result.Details["count_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Schema query failed: %v", err)
		log.Warn("Health check failed - schema query", "error", err)
		return result
	}
	result.Counts = &counts

	log.Debug("Health check passed", "users", counts.Users, "gemstones", counts.Gemstones)

	return result
}

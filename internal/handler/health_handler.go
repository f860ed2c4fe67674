package handler

import (
	"net/http"
	"time"

	"partner-portal/pkg/database"
	"partner-portal/prometheus"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports service and database health.
func HealthCheck(c echo.Context) error {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := database.GetDB().DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, echo.Map{
		"status":    status,
		"database":  dbStatus,
		"service":   "partner-portal",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// MetricsHandler exposes the Prometheus scrape endpoint through echo.
func MetricsHandler(c echo.Context) error {
	prometheus.GetPrometheusHandler().ServeHTTP(c.Response(), c.Request())
	return nil
}

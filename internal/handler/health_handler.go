package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumnidir/internal/db"
	"alumnidir/internal/logger"
)

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(gormDB *gorm.DB) *HealthHandler {
	return &HealthHandler{db: gormDB}
}

// Root godoc
// @Summary Liveness banner
// @Tags health
// @Produce plain
// @Success 200 {string} string "Backend is running successfully"
// @Router / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Backend is running successfully")
}

// Healthz godoc
// @Summary Health check
// @Description Pass check=db to ping the database pool as well.
// @Tags health
// @Produce json
// @Param check query string false "Set to db to ping the database"
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c echo.Context) error {
	response := map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	if c.QueryParam("check") == "db" {
		if err := db.Ping(c.Request().Context(), h.db); err != nil {
			logger.FromEcho(c).Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/pkg/logger"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports service health
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health checks the database connection
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("Health check failed")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Database unavailable")
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok", "database": "up"}, ""))
}

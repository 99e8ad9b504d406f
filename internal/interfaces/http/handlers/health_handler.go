package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "kyc-bot.backend/internal/domain/errors"
	"kyc-bot.backend/internal/interfaces/http/response"
	"kyc-bot.backend/pkg/logger"
)

const rootBanner = "KYC bot is running."

// Pinger checks a backing dependency
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness endpoints
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Root reports that the process is alive
// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, rootBanner)
}

// Health checks the record store
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		logger.Warn(c.Request.Context(), "Health check failed", zap.Error(err))
		response.Error(c, domainerrors.ServiceUnavailable("record store unavailable", err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status": "ok",
		"store":  "up",
	})
}

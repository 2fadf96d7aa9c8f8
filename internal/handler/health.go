package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dukalink/storefront-gateway/internal/api"
)

type HealthHandler struct {
	redisClient *redis.Client
	backend     *api.Client
}

func NewHealthHandler(redisClient *redis.Client, backend *api.Client) *HealthHandler {
	return &HealthHandler{redisClient: redisClient, backend: backend}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "redis": "unavailable"})
		return
	}
	if err := h.backend.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "backend": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"redis":   "connected",
		"backend": "connected",
	})
}

package handler

import (
	"context"
	"time"

	"iq-admin/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// HealthResponse reports liveness and the state of the test-list cache.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

type HealthHandler struct {
	cache domain.Cache // may be nil
}

func NewHealthHandler(cache domain.Cache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} handler.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok", Cache: "disabled"}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			resp.Cache = "unavailable"
		} else {
			resp.Cache = "ok"
		}
	}
	return c.JSON(resp)
}

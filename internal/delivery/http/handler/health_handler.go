package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taxi-order-gateway/internal/usecase/dto"
)

// Health godoc
// @Summary Проверка живости
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{OK: true})
}

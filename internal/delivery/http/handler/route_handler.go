package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/taxi-order-gateway/internal/pkg/errors"
	"github.com/taxi-order-gateway/internal/pkg/utils"
	"github.com/taxi-order-gateway/internal/usecase"
	"github.com/taxi-order-gateway/internal/usecase/dto"
)

// RouteHandler - обработчик маршрутов и расчёта стоимости
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(routeUC *usecase.RouteUseCase) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
	}
}

// BuildRoute godoc
// @Summary Построение маршрута
// @Description Строит маршрут в диспетчерской по точкам в любой из форм (points, points_route, points_order). Ответ диспетчерской возвращается без изменений.
// @Tags Route
// @Accept json
// @Produce json
// @Param request body object true "Точки маршрута"
// @Success 200 {object} object "Ответ диспетчерской как есть"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 504 {object} utils.ErrorResponse
// @Router /route [post]
func (h *RouteHandler) BuildRoute(c *fiber.Ctx) error {
	resp, err := h.routeUC.BuildRoute(c.UserContext(), c.Body())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendUpstream(c, resp)
}

// Calculate godoc
// @Summary Расчёт стоимости
// @Description Считает стоимость поездки по построенному маршруту. Точки передаются в диспетчерскую как есть.
// @Tags Route
// @Accept json
// @Produce json
// @Param request body dto.CalculateRequest true "id маршрута и точки"
// @Success 200 {object} object "Ответ диспетчерской как есть"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 504 {object} utils.ErrorResponse
// @Router /calculate [post]
func (h *RouteHandler) Calculate(c *fiber.Ctx) error {
	// без BodyParser: форма шлёт JSON и с text/plain
	var req dto.CalculateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	resp, err := h.routeUC.Calculate(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendUpstream(c, resp)
}

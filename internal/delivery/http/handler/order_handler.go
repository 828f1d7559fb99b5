package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taxi-order-gateway/internal/pkg/utils"
	"github.com/taxi-order-gateway/internal/usecase"
)

// OrderHandler - обработчик оформления заказа
type OrderHandler struct {
	orderUC *usecase.OrderUseCase
}

// NewOrderHandler - создание нового OrderHandler
func NewOrderHandler(orderUC *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUC: orderUC,
	}
}

// CreateOrder godoc
// @Summary Оформление заказа такси
// @Description Принимает заказ в любой из исторических форм (points, points_route, points_order), при необходимости проверяет капчу, строит маршрут и создаёт заказ в диспетчерской. Ответ диспетчерской возвращается без изменений, с её HTTP статусом.
// @Tags Order
// @Accept json
// @Produce json
// @Param request body object true "Тело заказа: точки или id_route, phone, tariff, pay_type, comment, advanced, verification_token"
// @Success 200 {object} object "Ответ диспетчерской как есть"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 504 {object} utils.ErrorResponse
// @Router /order [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	resp, err := h.orderUC.CreateOrder(c.UserContext(), c.Body(), c.IP())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendUpstream(c, resp)
}

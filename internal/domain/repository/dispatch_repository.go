package repository

import (
	"context"

	"github.com/taxi-order-gateway/internal/domain"
)

// DispatchRepository определяет методы для работы с API диспетчерской (taxi/api/v2/web).
// Ответы возвращаются как есть; ошибка означает только сбой транспорта
// (таймаут, недоступность, тело не JSON).
type DispatchRepository interface {
	// CreateRoute строит маршрут по голым координатам
	CreateRoute(ctx context.Context, payload domain.RoutePayload) (*domain.UpstreamResponse, error)

	// CalculateOrder считает стоимость поездки по маршруту
	CalculateOrder(ctx context.Context, payload domain.CalculatePayload) (*domain.UpstreamResponse, error)

	// PlaceOrder создаёт заказ
	PlaceOrder(ctx context.Context, payload map[string]interface{}) (*domain.UpstreamResponse, error)
}

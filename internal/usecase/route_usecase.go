package usecase

import (
	"context"

	"github.com/taxi-order-gateway/internal/domain"
	"github.com/taxi-order-gateway/internal/domain/repository"
	apperrors "github.com/taxi-order-gateway/internal/pkg/errors"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"github.com/taxi-order-gateway/internal/pkg/validator"
	"github.com/taxi-order-gateway/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteUseCase - прямые вызовы /route и /order/calculate для формы бронирования
type RouteUseCase struct {
	normalizer   *Normalizer
	dispatchRepo repository.DispatchRepository
	taxiID       int64
	logger       *zap.Logger
}

// NewRouteUseCase создает новый экземпляр RouteUseCase
func NewRouteUseCase(
	normalizer *Normalizer,
	dispatchRepo repository.DispatchRepository,
	taxiID int64,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		normalizer:   normalizer,
		dispatchRepo: dispatchRepo,
		taxiID:       taxiID,
		logger:       logger,
	}
}

// BuildRoute принимает points, points_route или points_order в любой форме и строит маршрут
func (uc *RouteUseCase) BuildRoute(ctx context.Context, body []byte) (*domain.UpstreamResponse, error) {
	log := logger.FromContext(ctx, uc.logger)

	points, err := uc.normalizer.NormalizePoints(body)
	if err != nil {
		log.Info("Route request rejected by validation", zap.Error(err))
		return nil, err
	}

	log.Info("Creating route", zap.Int("points", len(points)))
	resp, err := uc.dispatchRepo.CreateRoute(ctx, domain.RoutePayload{
		TaxiID: uc.taxiID,
		Points: points,
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	if !resp.OK() {
		log.Warn("Route creation failed", zap.String("error", resp.ErrorText()))
	}
	return resp, nil
}

// Calculate считает стоимость по уже построенному маршруту, точки уходят как прислал клиент
func (uc *RouteUseCase) Calculate(ctx context.Context, req dto.CalculateRequest) (*domain.UpstreamResponse, error) {
	log := logger.FromContext(ctx, uc.logger)

	if err := validator.Validate(&req); err != nil {
		return nil, apperrors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err))
	}

	routeID, err := domain.ParseID(req.ID)
	if err != nil || routeID == 0 {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": "required",
		})
	}

	log.Info("Calculating fare", zap.Int64("id_route", routeID), zap.Int("points", len(req.Points)))
	resp, err := uc.dispatchRepo.CalculateOrder(ctx, domain.CalculatePayload{
		TaxiID: uc.taxiID,
		ID:     routeID,
		Points: req.Points,
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	if !resp.OK() {
		log.Warn("Fare calculation rejected", zap.String("error", resp.ErrorText()))
	}
	return resp, nil
}

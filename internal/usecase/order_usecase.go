package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taxi-order-gateway/internal/domain"
	"github.com/taxi-order-gateway/internal/domain/repository"
	apperrors "github.com/taxi-order-gateway/internal/pkg/errors"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// OrderConfig - параметры оркестрации заказа
type OrderConfig struct {
	TaxiID int64
	// CalculateBeforeOrder - считать стоимость перед каждым заказом, а не только по do_calculate
	CalculateBeforeOrder bool
	CalculateTimeout     time.Duration
	OrderStream          string
}

// OrderUseCase ведёт заказ через диспетчерскую: маршрут -> (расчёт) -> заказ.
// Повторов нет, ответы диспетчерской возвращаются без изменений.
type OrderUseCase struct {
	normalizer   *Normalizer
	verifier     *Verifier
	dispatchRepo repository.DispatchRepository
	streamRepo   repository.StreamRepository
	cfg          OrderConfig
	logger       *zap.Logger

	// фоновые расчёты стоимости и публикации событий
	background sync.WaitGroup
}

// NewOrderUseCase создает новый экземпляр OrderUseCase
func NewOrderUseCase(
	normalizer *Normalizer,
	verifier *Verifier,
	dispatchRepo repository.DispatchRepository,
	streamRepo repository.StreamRepository,
	cfg OrderConfig,
	logger *zap.Logger,
) *OrderUseCase {
	if cfg.CalculateTimeout == 0 {
		cfg.CalculateTimeout = 20 * time.Second
	}
	if cfg.OrderStream == "" {
		cfg.OrderStream = domain.DefaultOrderStream
	}
	return &OrderUseCase{
		normalizer:   normalizer,
		verifier:     verifier,
		dispatchRepo: dispatchRepo,
		streamRepo:   streamRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

// CreateOrder - полный путь /order: нормализация, проверка капчи, размещение
func (uc *OrderUseCase) CreateOrder(ctx context.Context, body []byte, remoteIP string) (*domain.UpstreamResponse, error) {
	log := logger.FromContext(ctx, uc.logger)

	req, err := uc.normalizer.Normalize(body)
	if err != nil {
		log.Info("Order rejected by validation", zap.Error(err))
		return nil, err
	}

	log.Info("Received order",
		zap.String("points_source", req.PointsSource),
		zap.Int("points", len(req.Points)),
		zap.Int64("id_route", req.RouteID),
		zap.String("phone", scalarString(req.Phone)),
		zap.Bool("has_token", req.VerificationToken != ""))

	if err := uc.verifier.Verify(ctx, req.VerificationToken, remoteIP); err != nil {
		return nil, err
	}

	return uc.PlaceOrder(ctx, req)
}

// PlaceOrder строит маршрут, если его нет, и размещает заказ
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, req *domain.OrderRequest) (*domain.UpstreamResponse, error) {
	log := logger.FromContext(ctx, uc.logger)

	routeCreated := false
	if req.NeedsRoute() {
		if len(req.Points) == 0 {
			return nil, apperrors.ErrMissingPoints
		}

		log.Info("Creating route", zap.Int("points", len(req.Points)))
		routeResp, err := uc.dispatchRepo.CreateRoute(ctx, domain.RoutePayload{
			TaxiID: uc.cfg.TaxiID,
			Points: req.Points,
		})
		if err != nil {
			return nil, upstreamError(err)
		}

		// отказ в маршруте отдаём клиенту как есть, заказ не создаём
		if !routeResp.OK() {
			log.Warn("Route creation failed",
				zap.Int("status_code", routeResp.StatusCode),
				zap.String("error", routeResp.ErrorText()))
			return routeResp, nil
		}

		req.RouteID = routeResp.ID()
		routeCreated = true
		log.Info("Route created", zap.Int64("id_route", req.RouteID))
	}

	if (uc.cfg.CalculateBeforeOrder || req.Calculate) && req.RouteID != 0 {
		uc.calculateAsync(ctx, req)
	}

	payload := req.OrderPayload()
	log.Info("Placing order",
		zap.Int64("id_taxi", req.TaxiID),
		zap.Int64("id_route", req.RouteID),
		zap.Int("points_order", len(req.RichPoints)),
		zap.Strings("keys", payloadKeys(payload)))

	resp, err := uc.dispatchRepo.PlaceOrder(ctx, payload)
	if err != nil {
		return nil, upstreamError(err)
	}

	if resp.OK() {
		log.Info("Order created", zap.String("id_order", orderID(resp)))
	} else {
		log.Warn("Order rejected by dispatch",
			zap.Int("status_code", resp.StatusCode),
			zap.String("error", resp.ErrorText()))
	}

	uc.publishAsync(ctx, req, resp, routeCreated)

	return resp, nil
}

// Wait дожидается фоновых расчётов и публикаций (graceful shutdown, тесты)
func (uc *OrderUseCase) Wait() {
	uc.background.Wait()
}

// calculateAsync - расчёт только для логов, на заказ не влияет
func (uc *OrderUseCase) calculateAsync(ctx context.Context, req *domain.OrderRequest) {
	log := logger.FromContext(ctx, uc.logger)
	payload := domain.CalculatePayload{
		TaxiID: uc.cfg.TaxiID,
		ID:     req.RouteID,
		Points: req.Points,
	}

	calcCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.CalculateTimeout)
	uc.background.Add(1)
	go func() {
		defer uc.background.Done()
		defer cancel()

		resp, err := uc.dispatchRepo.CalculateOrder(calcCtx, payload)
		if err != nil {
			log.Warn("Fare calculation failed", zap.Int64("id_route", payload.ID), zap.Error(err))
			return
		}
		if !resp.OK() {
			log.Warn("Fare calculation rejected",
				zap.Int64("id_route", payload.ID),
				zap.String("error", resp.ErrorText()))
			return
		}
		log.Info("Fare calculated",
			zap.Int64("id_route", payload.ID),
			zap.ByteString("result", resp.Body))
	}()
}

func (uc *OrderUseCase) publishAsync(ctx context.Context, req *domain.OrderRequest, resp *domain.UpstreamResponse, routeCreated bool) {
	if uc.streamRepo == nil {
		return
	}

	log := logger.FromContext(ctx, uc.logger)
	event := &domain.OrderPlacedEvent{
		EventID:      uuid.New(),
		RequestID:    logger.RequestIDFromContext(ctx),
		TaxiID:       req.TaxiID,
		RouteID:      req.RouteID,
		RouteCreated: routeCreated,
		Points:       len(req.Points),
		Status:       resp.OK(),
		Error:        resp.ErrorText(),
		PlacedAt:     time.Now().UTC(),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	uc.background.Add(1)
	go func() {
		defer uc.background.Done()
		defer cancel()

		if err := uc.streamRepo.PublishToStream(pubCtx, uc.cfg.OrderStream, event); err != nil {
			log.Warn("Failed to publish order event", zap.Error(err))
		}
	}()
}

// upstreamError - сбой транспорта до диспетчерской (не бизнес-ошибка)
func upstreamError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.ErrUpstreamTimeout
	}
	return apperrors.ErrUpstreamUnavailable
}

// orderID достаёт response.order.id_order для логов
func orderID(resp *domain.UpstreamResponse) string {
	var body struct {
		Response struct {
			Order struct {
				IDOrder json.RawMessage `json:"id_order"`
			} `json:"order"`
		} `json:"response"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil || len(body.Response.Order.IDOrder) == 0 {
		return "unknown"
	}
	var s string
	if err := json.Unmarshal(body.Response.Order.IDOrder, &s); err == nil {
		return s
	}
	return string(body.Response.Order.IDOrder)
}

func payloadKeys(payload map[string]interface{}) []string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taxi-order-gateway/internal/config"
	"github.com/taxi-order-gateway/internal/domain"
	"github.com/taxi-order-gateway/internal/domain/repository"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	routePath     = "/route"
	calculatePath = "/order/calculate"
	orderPath     = "/order"

	maxBodySize = 4 << 20
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewDispatchClient создает клиент API диспетчерской
func NewDispatchClient(cfg *config.TaxiConfig, logger *zap.Logger) repository.DispatchRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// CreateRoute строит маршрут
func (c *client) CreateRoute(ctx context.Context, payload domain.RoutePayload) (*domain.UpstreamResponse, error) {
	return c.post(ctx, routePath, payload)
}

// CalculateOrder считает стоимость
func (c *client) CalculateOrder(ctx context.Context, payload domain.CalculatePayload) (*domain.UpstreamResponse, error) {
	return c.post(ctx, calculatePath, payload)
}

// PlaceOrder создаёт заказ
func (c *client) PlaceOrder(ctx context.Context, payload map[string]interface{}) (*domain.UpstreamResponse, error) {
	return c.post(ctx, orderPath, payload)
}

func (c *client) post(ctx context.Context, path string, payload interface{}) (*domain.UpstreamResponse, error) {
	log := logger.FromContext(ctx, c.logger)
	url := c.baseURL + path

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	log.Debug("Calling dispatch API",
		zap.String("url", url),
		zap.Int("payload_bytes", len(body)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Failed to execute request", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Error("Failed to read response", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// ответ с ошибкой бизнес-логики тоже JSON, его отдаём клиенту как есть
	if !json.Valid(respBody) {
		log.Error("Dispatch API returned non-JSON body",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", truncate(string(respBody), 512)))
		return nil, fmt.Errorf("dispatch API error: status %d, non-JSON body", resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn("Dispatch API returned error status",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode))
	}

	return &domain.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(respBody),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

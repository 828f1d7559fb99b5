package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/taxi-order-gateway/internal/config"
	"github.com/taxi-order-gateway/internal/domain"
	"github.com/taxi-order-gateway/internal/domain/repository"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	verifyURL  string
	logger     *zap.Logger
}

// NewCaptchaClient создает клиент siteverify (reCAPTCHA, Turnstile и hCaptcha принимают одинаковую форму)
func NewCaptchaClient(cfg *config.CaptchaConfig, logger *zap.Logger) repository.CaptchaRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		verifyURL: cfg.VerifyURL,
		logger:    logger,
	}
}

type verifyResponse struct {
	Success bool `json:"success"`
}

// Verify отправляет {secret, response, remoteip} и возвращает вердикт вместе с сырым ответом
func (c *client) Verify(ctx context.Context, secret, token, remoteIP string) (*domain.Verdict, error) {
	log := logger.FromContext(ctx, c.logger)

	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Captcha verification request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Captcha API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("captcha API error: status %d", resp.StatusCode)
	}

	var parsed verifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Error("Failed to decode captcha response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Debug("Captcha verdict received", zap.Bool("success", parsed.Success))

	return &domain.Verdict{
		Success: parsed.Success,
		Raw:     json.RawMessage(body),
	}, nil
}

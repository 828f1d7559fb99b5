package usecase

import (
	"context"
	"encoding/json"

	"github.com/taxi-order-gateway/internal/config"
	"github.com/taxi-order-gateway/internal/domain/repository"
	apperrors "github.com/taxi-order-gateway/internal/pkg/errors"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"go.uber.org/zap"
)

// Verifier проверяет токен капчи перед размещением заказа.
//
// Без секрета проверка выключена. С секретом, но без токена запрос пропускается
// (старые клиенты токен не присылают), если не включён строгий режим Required.
type Verifier struct {
	captchaRepo repository.CaptchaRepository
	secret      string
	required    bool
	logger      *zap.Logger
}

// NewVerifier создает новый экземпляр Verifier
func NewVerifier(captchaRepo repository.CaptchaRepository, cfg *config.CaptchaConfig, logger *zap.Logger) *Verifier {
	return &Verifier{
		captchaRepo: captchaRepo,
		secret:      cfg.Secret,
		required:    cfg.Required,
		logger:      logger,
	}
}

// Enabled - секрет настроен
func (v *Verifier) Enabled() bool {
	return v.secret != ""
}

// Verify возвращает nil, если запрос можно пропускать дальше
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	log := logger.FromContext(ctx, v.logger)

	if !v.Enabled() {
		if v.required {
			log.Error("Captcha is required but CAPTCHA_SECRET is not set")
			return apperrors.ErrVerificationMisconfigured
		}
		return nil
	}

	if token == "" {
		if v.required {
			log.Info("Verification token missing")
			return apperrors.ErrVerificationFailed.WithDetails(map[string]interface{}{
				"reason": "token_required",
			})
		}
		log.Debug("No verification token, skipping captcha check")
		return nil
	}

	verdict, err := v.captchaRepo.Verify(ctx, v.secret, token, remoteIP)
	if err != nil {
		log.Warn("Captcha verification unavailable", zap.Error(err))
		return apperrors.ErrVerificationFailed.WithDetails(map[string]interface{}{
			"reason": "verification_unavailable",
			"error":  err.Error(),
		})
	}

	if !verdict.Success {
		log.Info("Captcha verification rejected", zap.ByteString("verdict", verdict.Raw))
		return apperrors.ErrVerificationFailed.WithDetails(map[string]interface{}{
			"reason":  "rejected",
			"verdict": json.RawMessage(verdict.Raw),
		})
	}

	log.Debug("Captcha verification passed")
	return nil
}

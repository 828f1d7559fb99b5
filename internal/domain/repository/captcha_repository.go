package repository

import (
	"context"

	"github.com/taxi-order-gateway/internal/domain"
)

// CaptchaRepository - сервис проверки токена капчи (siteverify)
type CaptchaRepository interface {
	Verify(ctx context.Context, secret, token, remoteIP string) (*domain.Verdict, error)
}

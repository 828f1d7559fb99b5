package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"go.uber.org/zap"
)

// Logger - access log запросов
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}

		// ответ на ошибку пишет ErrorHandler уже после middleware
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
			fields = append(fields, zap.Error(err))
		}
		fields = append(fields, zap.Int("status", status))

		l := logger.FromContext(c.UserContext(), log)
		switch {
		case status >= fiber.StatusInternalServerError:
			l.Error("HTTP request", fields...)
		case status >= fiber.StatusBadRequest:
			l.Warn("HTTP request", fields...)
		default:
			l.Info("HTTP request", fields...)
		}
		return err
	}
}

package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"go.uber.org/zap"
)

// Recovery - middleware для восстановления после паники.
// Паника пишется в zap с request_id, клиент получает internal_error через ErrorHandler.
func Recovery(log *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.FromContext(c.UserContext(), log).Error("Panic recovered",
				zap.String("path", c.Path()),
				zap.String("panic", fmt.Sprint(e)),
				zap.Stack("stack"),
			)
		},
	})
}

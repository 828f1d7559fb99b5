package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"go.uber.org/zap"
)

// HeaderRequestID - заголовок корреляции запроса
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID присваивает запросу идентификатор и кладёт в контекст логгер с ним.
// Идентификатор клиента принимается, если он не длиннее maxRequestIDLen.
func RequestID(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// id живёт дольше запроса (фоновые события и логи), буфер fiber переиспользуется
		id := utils.CopyString(c.Get(HeaderRequestID))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.Locals("request_id", id)

		ctx := logger.WithRequestID(c.UserContext(), id)
		ctx = logger.WithContext(ctx, log.With(zap.String("request_id", id)))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// Форма заказа живёт на сайте таксопарка, поэтому источник задаётся конфигом (ALLOWED_ORIGIN).
func CORS(allowedOrigin string) fiber.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:  allowedOrigin,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Content-Type,Accept,Accept-Language,X-Request-ID",
		ExposeHeaders: HeaderRequestID,
		// с "*" fiber запрещает credentials
		AllowCredentials: allowedOrigin != "*",
	})
}

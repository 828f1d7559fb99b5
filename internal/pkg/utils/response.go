package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/taxi-order-gateway/internal/domain"
	"github.com/taxi-order-gateway/internal/pkg/errors"
)

// ErrorResponse - тело локальной ошибки. status:false повторяет форму ответа диспетчерской,
// чтобы клиентская форма разбирала оба вида ответов одинаково
type ErrorResponse struct {
	Status  bool                   `json:"status"`
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func SendError(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.ErrInternalServer
	}

	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Status:  false,
		Error:   appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// SendUpstream отдаёт ответ диспетчерской как есть: тот же HTTP статус и то же тело
func SendUpstream(c *fiber.Ctx, resp *domain.UpstreamResponse) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(resp.StatusCode).Send(resp.Body)
}

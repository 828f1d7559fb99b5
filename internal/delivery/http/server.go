package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/taxi-order-gateway/internal/config"
	"github.com/taxi-order-gateway/internal/delivery/http/handler"
	"github.com/taxi-order-gateway/internal/delivery/http/middleware"
	"github.com/taxi-order-gateway/internal/pkg/errors"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"github.com/taxi-order-gateway/internal/pkg/utils"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	orderHandler *handler.OrderHandler
	routeHandler *handler.RouteHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	orderHandler *handler.OrderHandler,
	routeHandler *handler.RouteHandler,
) *Server {
	// запись длиннее таймаута диспетчерской: маршрут и заказ идут последовательно
	writeTimeout := 2*cfg.Taxi.RequestTimeout + 10*time.Second

	app := fiber.New(fiber.Config{
		AppName:      "Taxi Order Gateway",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:          app,
		config:       cfg,
		logger:       logger,
		orderHandler: orderHandler,
		routeHandler: routeHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber приложение (для app.Test в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestID(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.CORS(s.config.CORS.AllowedOrigin))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/health", handler.Health)

	s.app.Post("/route", s.routeHandler.BuildRoute)
	s.app.Post("/calculate", s.routeHandler.Calculate)
	s.app.Post("/order", s.orderHandler.CreateOrder)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404, 405, паники),
// в том же виде, что и локальные ошибки API
func customErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if !stderrors.As(err, &fiberErr) {
			logger.FromContext(c.UserContext(), log).Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return utils.SendError(c, err)
		}

		code := errors.CodeInvalidRequest
		if fiberErr.Code >= fiber.StatusInternalServerError {
			code = errors.CodeInternal
		}

		return utils.SendError(c, errors.New(code, fiberErr.Message, fiberErr.Code))
	}
}

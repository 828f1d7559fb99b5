package main

// @title Taxi Order Gateway API
// @version 1.0.0
// @description Шлюз заказов такси для формы бронирования на сайте таксопарка.
// @description Принимает заказы в исторических формах, при необходимости проверяет капчу,
// @description строит маршрут и создаёт заказ в диспетчерской. Ответы диспетчерской отдаются без изменений.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/taxi-order-gateway/docs"
	"github.com/taxi-order-gateway/internal/config"
	httpDelivery "github.com/taxi-order-gateway/internal/delivery/http"
	"github.com/taxi-order-gateway/internal/delivery/http/handler"
	"github.com/taxi-order-gateway/internal/domain/repository"
	"github.com/taxi-order-gateway/internal/infrastructure/captcha"
	"github.com/taxi-order-gateway/internal/infrastructure/dispatch"
	"github.com/taxi-order-gateway/internal/pkg/logger"
	"github.com/taxi-order-gateway/internal/repository/redis"
	"github.com/taxi-order-gateway/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Taxi Order Gateway")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("taxi_api", cfg.Taxi.BaseURL),
		zap.Int64("id_taxi", cfg.Taxi.ID),
		zap.Bool("captcha", cfg.Captcha.Secret != ""),
		zap.Bool("captcha_required", cfg.Captcha.Required),
		zap.Bool("calculate_before_order", cfg.Taxi.CalculateBeforeOrder),
	)

	// 3. Connect to Redis (опционально, только для событий о заказах)
	var streamRepo repository.StreamRepository = redis.NewNopStreamRepository()
	var redisClient *redis.Redis
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Health(ctx)
		cancel()
		if err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}

		streamRepo = redis.NewStreamRepository(redisClient.Client(), log)
		log.Info("Redis connected", zap.String("stream", cfg.Redis.OrderStream))
	} else {
		log.Info("Redis disabled, order events are not published")
	}

	// 4. Initialize upstream clients
	dispatchClient := dispatch.NewDispatchClient(&cfg.Taxi, log)
	captchaClient := captcha.NewCaptchaClient(&cfg.Captcha, log)

	log.Info("Upstream clients initialized")

	// 5. Initialize Use Cases
	normalizer := usecase.NewNormalizer(cfg.Taxi.ID)
	verifier := usecase.NewVerifier(captchaClient, &cfg.Captcha, log)

	orderUC := usecase.NewOrderUseCase(
		normalizer,
		verifier,
		dispatchClient,
		streamRepo,
		usecase.OrderConfig{
			TaxiID:               cfg.Taxi.ID,
			CalculateBeforeOrder: cfg.Taxi.CalculateBeforeOrder,
			CalculateTimeout:     cfg.Taxi.RequestTimeout,
			OrderStream:          cfg.Redis.OrderStream,
		},
		log,
	)

	routeUC := usecase.NewRouteUseCase(normalizer, dispatchClient, cfg.Taxi.ID, log)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	orderHandler := handler.NewOrderHandler(orderUC)
	routeHandler := handler.NewRouteHandler(routeUC)

	log.Info("HTTP handlers initialized")

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		orderHandler,
		routeHandler,
	)

	log.Info("HTTP server initialized")

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Дожидаемся фоновых расчётов и публикаций событий
	orderUC.Wait()

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}

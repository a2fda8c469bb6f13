package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/fleetops/depot-backend/docs"
	"github.com/fleetops/depot-backend/internal/stock"
	httpDelivery "github.com/fleetops/depot-backend/internal/stock/delivery/http"
	"github.com/fleetops/depot-backend/internal/stock/repository"
	"github.com/fleetops/depot-backend/kafka"
	"github.com/fleetops/depot-backend/pkg/database"
	"github.com/fleetops/depot-backend/pkg/logger"
	"github.com/fleetops/depot-backend/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "stock-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting stock service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "stockdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.NewGormResourceRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional redis-backed aggregate cache
	var redisClient *redis.Client
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		defer redisClient.Close()

		logger.Logger.Info().Str("addr", redisAddr).Msg("Aggregate cache enabled")
	}

	deps := stock.Deps{
		UserServiceURL: getEnv("USER_SERVICE_URL", "http://localhost:8080"),
		RedisClient:    redisClient,
	}

	// Optional kafka movement event publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to connect to kafka, movement events disabled")
		} else {
			defer publisher.Close()
			deps.Publisher = publisher

			logger.Logger.Info().Str("brokers", brokers).Msg("Movement event publisher enabled")
		}
	}

	// Initialize handlers with Wire DI
	stockHandler, err := stock.InitializeHTTPHandler(db, deps)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize stock handler")
	}

	movementHandler, err := stock.InitializeMovementHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize movement handler")
	}

	depotHandler, err := stock.InitializeDepotHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize depot handler")
	}

	logger.Logger.Info().
		Str("user_service_url", deps.UserServiceURL).
		Msg("Stock handlers initialized")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	go startHTTPServer(stockHandler, movementHandler, depotHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(stockHandler *httpDelivery.StockHandler, movementHandler *httpDelivery.MovementHandler, depotHandler *httpDelivery.DepotHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register all middlewares using middleware registration system
	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Fixed-path routes must be registered before the generic
	// /api/{resourceType} routes or mux matches the wrong handler
	movementHandler.RegisterRoutes(router)
	depotHandler.RegisterRoutes(router)
	stockHandler.RegisterRoutes(router)

	// Health check endpoint
	stockHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// CORS middleware
	corsHandler := httpDelivery.SetupCORS(middlewareConfig)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/index.html").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, corsHandler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

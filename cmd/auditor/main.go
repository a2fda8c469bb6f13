package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetops/depot-backend/kafka"
	"github.com/fleetops/depot-backend/pkg/logger"
	"github.com/fleetops/depot-backend/pkg/tracing"
)

// The auditor tails the stock-movements topic and keeps an append-only
// audit trail in the logs plus movement counters for alerting. It holds
// no state of its own; replaying the topic rebuilds everything.
func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "stock-auditor")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Msg("Starting stock auditor")

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

	// Prometheus metrics
	movementCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_auditor_movements_total",
			Help: "Stock movement events consumed by action and resource type",
		},
		[]string{"action", "resource_type"},
	)
	movementQuantity := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_auditor_movement_quantity_total",
			Help: "Total quantity moved by action and resource type",
		},
		[]string{"action", "resource_type"},
	)
	prometheus.MustRegister(movementCounter)
	prometheus.MustRegister(movementQuantity)

	// Kafka consumer
	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "stock-auditor")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicStockMovements})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeStockMovement, func(ctx context.Context, event kafka.StockMovementEvent) error {
		movementCounter.WithLabelValues(string(event.Action), string(event.ResourceType)).Inc()
		movementQuantity.WithLabelValues(string(event.Action), string(event.ResourceType)).Add(event.Quantity)

		logger.Info(ctx).
			Str("event_id", event.EventID).
			Str("action", string(event.Action)).
			Str("resource_type", string(event.ResourceType)).
			Uint("resource_id", event.ResourceID).
			Uint("technician_id", event.TechnicianID).
			Uint("depot_id", event.DepotID).
			Uint("attribution_id", event.AttributionID).
			Float64("quantity", event.Quantity).
			Str("author", event.Author).
			Msg("Stock movement audited")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	// Expose metrics and a liveness endpoint
	httpPort := getEnv("HTTP_PORT", "8084")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"healthy"}`))
		})

		logger.Logger.Info().
			Str("port", httpPort).
			Msg("Auditor metrics endpoint started")

		if err := http.ListenAndServe(":"+httpPort, mux); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down auditor...")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

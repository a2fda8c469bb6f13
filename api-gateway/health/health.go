// Package health fans out to the backend services and reports how much
// of the depot platform is usable through the gateway.
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fleetops/depot-backend/api-gateway/config"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// criticalServices are the backends the gateway is useless without.
// The stock service owns the reservation protocol; when it is down the
// gateway reports unhealthy, not merely degraded. Losing only the user
// service still leaves reads and releases for already-known callers.
var criticalServices = map[string]bool{
	"stock": true,
}

// ServiceHealth is the probe result for one backend service
type ServiceHealth struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"` // healthy, unhealthy
	Critical  bool          `json:"critical"`
	URL       string        `json:"url"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GatewayHealth aggregates the per-service probes
type GatewayHealth struct {
	Gateway  string                   `json:"gateway"`
	Status   string                   `json:"status"` // healthy, degraded, unhealthy
	Services map[string]ServiceHealth `json:"services"`
	Uptime   time.Duration            `json:"uptime_seconds"`
}

// HealthChecker probes the backend services
type HealthChecker struct {
	config    *config.GatewayConfig
	client    *http.Client
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(cfg *config.GatewayConfig) *HealthChecker {
	return &HealthChecker{
		config: cfg,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		startTime: time.Now(),
	}
}

// CheckService probes one backend's health endpoint
func (h *HealthChecker) CheckService(ctx context.Context, name string, svc config.ServiceConfig) ServiceHealth {
	start := time.Now()

	result := ServiceHealth{
		Name:      name,
		Critical:  criticalServices[name],
		URL:       svc.BaseURL,
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, "GET", svc.BaseURL+svc.HealthCheck, nil)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to create request: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	resp, err := h.client.Do(req)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to reach service: %v", err)
		result.Latency = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.Latency = time.Since(start)

	// The stock service answers 503 when its database is gone, which is
	// just as unusable as not answering at all
	if resp.StatusCode == http.StatusOK {
		result.Status = "healthy"
	} else {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Unexpected status code: %d", resp.StatusCode)
	}

	return result
}

// CheckAllServices probes every configured backend concurrently
func (h *HealthChecker) CheckAllServices(ctx context.Context) GatewayHealth {
	services := make(map[string]ServiceHealth)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, svc := range h.config.Services {
		wg.Add(1)
		go func(n string, s config.ServiceConfig) {
			defer wg.Done()
			health := h.CheckService(ctx, n, s)

			mu.Lock()
			services[n] = health
			mu.Unlock()

			if health.Status != "healthy" {
				logger.Logger.Warn().
					Str("service", n).
					Bool("critical", health.Critical).
					Str("error", health.Error).
					Msg("Service health check failed")
			}
		}(name, svc)
	}

	wg.Wait()

	return GatewayHealth{
		Gateway:  "depot-gateway",
		Status:   overallStatus(services),
		Services: services,
		Uptime:   time.Since(h.startTime),
	}
}

// overallStatus folds the per-service results: an unhealthy critical
// service makes the whole gateway unhealthy, anything else unhealthy
// only degrades it
func overallStatus(services map[string]ServiceHealth) string {
	status := "healthy"
	for _, svc := range services {
		if svc.Status == "healthy" {
			continue
		}
		if svc.Critical {
			return "unhealthy"
		}
		status = "degraded"
	}
	return status
}

// QuickCheck reports on the gateway itself without probing backends
func (h *HealthChecker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    "healthy",
		"gateway":   "depot-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// Load builds the gateway configuration from the environment.
// A .env file in the working directory is picked up when present.
func Load() (*GatewayConfig, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("GATEWAY_PORT", "8000")
	v.SetDefault("USER_SERVICE_URL", "http://localhost:8080")
	v.SetDefault("STOCK_SERVICE_URL", "http://localhost:8082")
	v.SetDefault("SERVICE_TIMEOUT", "30s")

	timeout, err := time.ParseDuration(v.GetString("SERVICE_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	return &GatewayConfig{
		Port: v.GetString("GATEWAY_PORT"),
		Services: map[string]ServiceConfig{
			"user": {
				Name:        "user-service",
				BaseURL:     v.GetString("USER_SERVICE_URL"),
				Instances:   instances(v, "USER_SERVICE_INSTANCES", v.GetString("USER_SERVICE_URL")),
				Timeout:     timeout,
				HealthCheck: "/health",
			},
			"stock": {
				Name:        "stock-service",
				BaseURL:     v.GetString("STOCK_SERVICE_URL"),
				Instances:   instances(v, "STOCK_SERVICE_INSTANCES", v.GetString("STOCK_SERVICE_URL")),
				Timeout:     timeout,
				HealthCheck: "/health",
			},
		},
	}, nil
}

// instances reads a comma-separated list of instance URLs, falling back
// to the single base URL when the variable is unset.
func instances(v *viper.Viper, key, baseURL string) []string {
	raw := v.GetString(key)
	if raw == "" {
		return []string{baseURL}
	}

	var urls []string
	for _, u := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	if len(urls) == 0 {
		return []string{baseURL}
	}
	return urls
}

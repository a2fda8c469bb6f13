// Package client holds HTTP clients for the stock service's collaborators.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fleetops/depot-backend/pkg/logger"
)

// ErrUserNotFound is returned when the user service has no such technician
var ErrUserNotFound = errors.New("user not found")

// Technician is the slice of a user record the stock service needs to
// validate an attribution target
type Technician struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UserServiceClient calls the user service over HTTP with propagated
// trace context
type UserServiceClient struct {
	baseURL string
	http    *http.Client
}

// NewUserServiceClient creates a new user service client
func NewUserServiceClient(baseURL string) *UserServiceClient {
	return &UserServiceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// GetTechnician fetches one technician by id
func (c *UserServiceClient) GetTechnician(ctx context.Context, id uint) (*Technician, error) {
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decode
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		logger.Warn(ctx).
			Int("status", resp.StatusCode).
			Str("url", url).
			Msg("Unexpected user service response")
		return nil, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	var technician Technician
	if err := json.NewDecoder(resp.Body).Decode(&technician); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}
	return &technician, nil
}

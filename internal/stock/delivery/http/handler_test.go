package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/usecase/command"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusConflict},
		{"exceeds holding", domain.ErrExceedsAssigned, http.StatusConflict},
		{"quantity below assigned", domain.ErrQuantityBelowAssigned, http.StatusConflict},
		{"already canceled", domain.ErrAlreadyCanceled, http.StatusConflict},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"directory down", command.ErrDirectoryUnavailable, http.StatusBadGateway},
		{"wrapped directory down", fmt.Errorf("%w: connection refused", command.ErrDirectoryUnavailable), http.StatusBadGateway},
		{"plain validation error", errors.New("author is required"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFromError(tt.err); got != tt.want {
				t.Errorf("statusFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

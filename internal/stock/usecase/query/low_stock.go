package query

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// LowStockQuery lists resources whose available quantity is under their
// configured minimum
type LowStockQuery struct {
	Limit  int
	Offset int
}

// LowStockHandler handles the low stock query
type LowStockHandler struct {
	repo domain.ResourceRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.ResourceRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle executes the low stock query
func (h *LowStockHandler) Handle(ctx context.Context, q LowStockQuery) ([]ResourceView, error) {
	resources, err := h.repo.FindLowStock(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock resources: %w", err)
	}

	views := make([]ResourceView, 0, len(resources))
	for i := range resources {
		views = append(views, NewResourceView(ctx, &resources[i]))
	}
	return views, nil
}

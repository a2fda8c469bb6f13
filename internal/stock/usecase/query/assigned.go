package query

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// AssignedQuery computes the assigned-by-technician aggregate for one
// resource
type AssignedQuery struct {
	ResourceType domain.ResourceType
	ResourceID   uint
}

// AssignedHandler folds the full ledger, read-through the aggregate
// cache. The cache is invalidated on every append, so a hit is always as
// fresh as the last commit.
type AssignedHandler struct {
	ledger domain.LedgerRepository
	cache  domain.AggregateCache
}

// NewAssignedHandler creates a new assigned handler. cache may be nil.
func NewAssignedHandler(ledger domain.LedgerRepository, cache domain.AggregateCache) *AssignedHandler {
	return &AssignedHandler{ledger: ledger, cache: cache}
}

// Handle executes the assigned query
func (h *AssignedHandler) Handle(ctx context.Context, q AssignedQuery) (map[uint]float64, error) {
	if h.cache != nil {
		if totals, ok := h.cache.Get(ctx, q.ResourceType, q.ResourceID); ok {
			return totals, nil
		}
	}

	// Fold over the full ledger, never a display page
	entries, err := h.ledger.ListByResource(q.ResourceType, q.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	totals := domain.AssignedByTechnician(entries)

	if h.cache != nil {
		h.cache.Set(ctx, q.ResourceType, q.ResourceID, totals)
	}
	return totals, nil
}

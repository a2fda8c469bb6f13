package query

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// HistoryQuery fetches one page of a resource's attribution history,
// most recent first
type HistoryQuery struct {
	ResourceType domain.ResourceType
	ResourceID   uint
	Page         int
	Limit        int
}

// HistoryHandler handles the history query
type HistoryHandler struct {
	ledger domain.LedgerRepository
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(ledger domain.LedgerRepository) *HistoryHandler {
	return &HistoryHandler{ledger: ledger}
}

// Handle executes the history query. Purely a display concern: aggregates
// are never derived from the returned page.
func (h *HistoryHandler) Handle(ctx context.Context, q HistoryQuery) (*domain.LedgerPage, error) {
	page, err := h.ledger.PageByResource(q.ResourceType, q.ResourceID, q.Page, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return page, nil
}

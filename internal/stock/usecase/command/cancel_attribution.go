package command

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/kafka"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// CancelAttributionCommand voids a committed ledger entry. The entry is
// not edited or deleted; it moves to CANCELED status and stops counting
// toward aggregates.
type CancelAttributionCommand struct {
	EntryID uint
	Author  string
}

// CancelAttributionHandler handles the cancel command
type CancelAttributionHandler struct {
	store     domain.ReservationStore
	cache     domain.AggregateCache
	publisher MovementPublisher
}

// NewCancelAttributionHandler creates a new cancel handler
func NewCancelAttributionHandler(store domain.ReservationStore, cache domain.AggregateCache, publisher MovementPublisher) *CancelAttributionHandler {
	return &CancelAttributionHandler{store: store, cache: cache, publisher: publisher}
}

// Handle executes the cancel command
func (h *CancelAttributionHandler) Handle(ctx context.Context, cmd CancelAttributionCommand) (*ReserveResult, error) {
	if cmd.EntryID == 0 {
		return nil, fmt.Errorf("attribution id is required")
	}
	if cmd.Author == "" {
		return nil, fmt.Errorf("author is required")
	}

	resource, entry, err := h.store.CancelAttribution(ctx, cmd.EntryID, cmd.Author)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, resource.Type, resource.ID)
	}
	if h.publisher != nil {
		event := kafka.StockMovementEvent{
			Action:        domain.MovementAdjust,
			ResourceType:  resource.Type,
			ResourceID:    resource.ID,
			Quantity:      float64(entry.Quantity),
			Author:        cmd.Author,
			AttributionID: entry.ID,
		}
		if entry.ToUserID != nil {
			event.TechnicianID = *entry.ToUserID
		}
		if err := h.publisher.PublishStockMovement(ctx, event); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("attribution_id", entry.ID).
				Msg("Stock movement event not published")
		}
	}

	return &ReserveResult{Resource: resource, Attribution: entry}, nil
}

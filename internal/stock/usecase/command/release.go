package command

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/kafka"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// ReleaseCommand represents one attempt to return technician-held
// quantity to the depot
type ReleaseCommand struct {
	ResourceType domain.ResourceType
	ResourceID   uint
	Quantity     float64
	TechnicianID uint
	DepotID      *uint
	Author       string
	Note         string
}

// ReleaseHandler handles the release command
type ReleaseHandler struct {
	store     domain.ReservationStore
	cache     domain.AggregateCache
	publisher MovementPublisher
}

// NewReleaseHandler creates a new release handler
func NewReleaseHandler(store domain.ReservationStore, cache domain.AggregateCache, publisher MovementPublisher) *ReleaseHandler {
	return &ReleaseHandler{store: store, cache: cache, publisher: publisher}
}

// Handle executes the release command. The store validates the quantity
// against the technician's ledger holding, not the resource-wide assigned
// quantity.
func (h *ReleaseHandler) Handle(ctx context.Context, cmd ReleaseCommand) (*ReserveResult, error) {
	if !domain.ValidQuantity(cmd.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	if cmd.TechnicianID == 0 {
		return nil, fmt.Errorf("technician is required")
	}
	if cmd.Author == "" {
		return nil, fmt.Errorf("author is required")
	}

	resource, entry, err := h.store.Release(ctx, domain.ReserveParams{
		ResourceType: cmd.ResourceType,
		ResourceID:   cmd.ResourceID,
		Quantity:     cmd.Quantity,
		TechnicianID: cmd.TechnicianID,
		DepotID:      cmd.DepotID,
		Author:       cmd.Author,
		Note:         cmd.Note,
	})
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, resource.Type, resource.ID)
	}
	if h.publisher != nil {
		event := kafka.StockMovementEvent{
			Action:        domain.MovementRelease,
			ResourceType:  resource.Type,
			ResourceID:    resource.ID,
			Quantity:      float64(entry.Quantity),
			TechnicianID:  cmd.TechnicianID,
			Author:        entry.Author,
			AttributionID: entry.ID,
		}
		if entry.FromDepotID != nil {
			event.DepotID = *entry.FromDepotID
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

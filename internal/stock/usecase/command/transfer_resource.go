package command

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/kafka"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// TransferResourceCommand moves a resource to another depot (or out of
// any depot when ToDepotID is nil)
type TransferResourceCommand struct {
	ResourceType domain.ResourceType
	ResourceID   uint
	ToDepotID    *uint
	Author       string
}

// TransferResourceHandler handles depot transfers
type TransferResourceHandler struct {
	store     domain.ReservationStore
	depots    domain.DepotRepository
	publisher MovementPublisher
}

// NewTransferResourceHandler creates a new transfer handler
func NewTransferResourceHandler(store domain.ReservationStore, depots domain.DepotRepository, publisher MovementPublisher) *TransferResourceHandler {
	return &TransferResourceHandler{store: store, depots: depots, publisher: publisher}
}

// Handle executes the transfer command
func (h *TransferResourceHandler) Handle(ctx context.Context, cmd TransferResourceCommand) (*domain.Resource, *domain.Movement, error) {
	if cmd.Author == "" {
		return nil, nil, fmt.Errorf("author is required")
	}
	if cmd.ToDepotID != nil {
		if _, err := h.depots.FindByID(*cmd.ToDepotID); err != nil {
			return nil, nil, fmt.Errorf("destination depot %d does not exist", *cmd.ToDepotID)
		}
	}

	resource, movement, err := h.store.TransferDepot(ctx, cmd.ResourceType, cmd.ResourceID, cmd.ToDepotID, cmd.Author)
	if err != nil {
		return nil, nil, err
	}

	if h.publisher != nil {
		event := kafka.StockMovementEvent{
			Action:       domain.MovementTransfer,
			ResourceType: resource.Type,
			ResourceID:   resource.ID,
			Quantity:     movement.Quantity,
			Author:       cmd.Author,
		}
		if cmd.ToDepotID != nil {
			event.DepotID = *cmd.ToDepotID
		}
		if err := h.publisher.PublishStockMovement(ctx, event); err != nil {
			logger.Warn(ctx).Err(err).Uint("resource_id", resource.ID).Msg("Stock movement event not published")
		}
	}

	return resource, movement, nil
}

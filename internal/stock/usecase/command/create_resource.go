package command

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/kafka"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// CreateResourceCommand represents resource intake (manual create or
// receipt import). Assigned quantity always starts at zero.
type CreateResourceCommand struct {
	Type        domain.ResourceType
	Name        string
	Unit        string
	Quantity    float64
	MinQuantity float64
	DepotID     *uint
	Author      string
}

// CreateResourceHandler handles resource creation
type CreateResourceHandler struct {
	resources domain.ResourceRepository
	movements domain.MovementRepository
	publisher MovementPublisher
}

// NewCreateResourceHandler creates a new create resource handler
func NewCreateResourceHandler(resources domain.ResourceRepository, movements domain.MovementRepository, publisher MovementPublisher) *CreateResourceHandler {
	return &CreateResourceHandler{resources: resources, movements: movements, publisher: publisher}
}

// Handle executes the create resource command
func (h *CreateResourceHandler) Handle(ctx context.Context, cmd CreateResourceCommand) (*domain.Resource, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Type != domain.ResourceMaterial && cmd.Type != domain.ResourceConsumable && cmd.Type != domain.ResourceVehicle {
		return nil, fmt.Errorf("invalid resource type")
	}
	if cmd.Quantity < 0 || cmd.MinQuantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}
	if cmd.Author == "" {
		return nil, fmt.Errorf("author is required")
	}

	unit := cmd.Unit
	if unit == "" {
		unit = "unit"
	}

	resource := &domain.Resource{
		Type:             cmd.Type,
		Name:             cmd.Name,
		Unit:             unit,
		Quantity:         cmd.Quantity,
		AssignedQuantity: 0,
		MinQuantity:      cmd.MinQuantity,
		DepotID:          cmd.DepotID,
	}
	if err := h.resources.Create(resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	toKind := domain.EndpointDepot
	if resource.DepotID == nil {
		toKind = domain.EndpointNone
	}
	movement := &domain.Movement{
		ResourceType: resource.Type,
		ResourceID:   resource.ID,
		Action:       domain.MovementCreate,
		FromKind:     domain.EndpointSupplier,
		ToKind:       toKind,
		ToID:         resource.DepotID,
		Quantity:     resource.Quantity,
		Unit:         resource.Unit,
		Author:       cmd.Author,
		Status:       domain.StatusCommitted,
	}
	if err := h.movements.Create(movement); err != nil {
		logger.Warn(ctx).Err(err).Uint("resource_id", resource.ID).Msg("Intake movement not recorded")
	}

	if h.publisher != nil {
		event := kafka.StockMovementEvent{
			Action:       domain.MovementCreate,
			ResourceType: resource.Type,
			ResourceID:   resource.ID,
			Quantity:     resource.Quantity,
			Author:       cmd.Author,
		}
		if resource.DepotID != nil {
			event.DepotID = *resource.DepotID
		}
		if err := h.publisher.PublishStockMovement(ctx, event); err != nil {
			logger.Warn(ctx).Err(err).Uint("resource_id", resource.ID).Msg("Stock movement event not published")
		}
	}

	return resource, nil
}

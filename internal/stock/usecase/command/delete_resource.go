package command

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// DeleteResourceCommand removes a resource from stock tracking
type DeleteResourceCommand struct {
	ResourceType domain.ResourceType
	ResourceID   uint
	Author       string
}

// DeleteResourceHandler handles resource deletion
type DeleteResourceHandler struct {
	resources domain.ResourceRepository
	movements domain.MovementRepository
}

// NewDeleteResourceHandler creates a new delete resource handler
func NewDeleteResourceHandler(resources domain.ResourceRepository, movements domain.MovementRepository) *DeleteResourceHandler {
	return &DeleteResourceHandler{resources: resources, movements: movements}
}

// Handle executes the delete resource command. A resource with quantity
// still assigned to technicians cannot be removed.
func (h *DeleteResourceHandler) Handle(ctx context.Context, cmd DeleteResourceCommand) error {
	if cmd.Author == "" {
		return fmt.Errorf("author is required")
	}

	resource, err := h.resources.FindByID(cmd.ResourceID)
	if err != nil {
		return err
	}
	if cmd.ResourceType != "" && resource.Type != cmd.ResourceType {
		return domain.ErrNotFound
	}
	if resource.AssignedQuantity > 0 {
		return fmt.Errorf("resource still has %g assigned to technicians", resource.AssignedQuantity)
	}

	if err := h.resources.Delete(resource.ID); err != nil {
		return err
	}

	movement := &domain.Movement{
		ResourceType: resource.Type,
		ResourceID:   resource.ID,
		Action:       domain.MovementDelete,
		FromKind:     domain.EndpointDepot,
		FromID:       resource.DepotID,
		ToKind:       domain.EndpointNone,
		Quantity:     resource.Quantity,
		Unit:         resource.Unit,
		Author:       cmd.Author,
		Status:       domain.StatusCommitted,
	}
	if err := h.movements.Create(movement); err != nil {
		logger.Warn(ctx).Err(err).Uint("resource_id", resource.ID).Msg("Deletion movement not recorded")
	}

	return nil
}

package command

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// UpdateResourceCommand edits a resource's metadata and stock ceiling.
// AssignedQuantity is deliberately absent: it only moves through the
// reservation protocol.
type UpdateResourceCommand struct {
	ResourceType domain.ResourceType
	ResourceID   uint
	Name         *string
	Unit         *string
	Quantity     *float64
	MinQuantity  *float64
	Author       string
}

// UpdateResourceHandler handles resource updates
type UpdateResourceHandler struct {
	store domain.ReservationStore
}

// NewUpdateResourceHandler creates a new update resource handler
func NewUpdateResourceHandler(store domain.ReservationStore) *UpdateResourceHandler {
	return &UpdateResourceHandler{store: store}
}

// Handle executes the update resource command. The quantity guard runs
// inside the store under the same lock the reservation protocol takes,
// so a concurrent Reserve cannot slip between the read and the write.
func (h *UpdateResourceHandler) Handle(ctx context.Context, cmd UpdateResourceCommand) (*domain.Resource, error) {
	if cmd.Author == "" {
		return nil, fmt.Errorf("author is required")
	}
	if cmd.Name != nil && *cmd.Name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if cmd.MinQuantity != nil && *cmd.MinQuantity < 0 {
		return nil, fmt.Errorf("min quantity cannot be negative")
	}

	update := domain.ResourceUpdate{
		ResourceType: cmd.ResourceType,
		ResourceID:   cmd.ResourceID,
		Name:         cmd.Name,
		Quantity:     cmd.Quantity,
		MinQuantity:  cmd.MinQuantity,
		Author:       cmd.Author,
	}
	if cmd.Unit != nil && *cmd.Unit != "" {
		update.Unit = cmd.Unit
	}

	resource, _, err := h.store.UpdateDetails(ctx, update)
	if err != nil {
		return nil, err
	}
	return resource, nil
}

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/client"
	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/kafka"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// ErrDirectoryUnavailable marks a technician lookup that failed for a
// reason other than the technician being unknown. The request itself may
// be fine, so it maps to an upstream failure rather than a client error.
var ErrDirectoryUnavailable = errors.New("technician directory unavailable")

// ReserveCommand represents one attempt to assign quantity to a technician
type ReserveCommand struct {
	ResourceType domain.ResourceType
	ResourceID   uint
	Quantity     float64
	TechnicianID uint
	DepotID      *uint
	Author       string
	Note         string
}

// ReserveResult is the committed outcome returned to the caller. The
// resource carries the authoritative assigned quantity; callers must not
// extrapolate from their own pre-call snapshot.
type ReserveResult struct {
	Resource    *domain.Resource         `json:"resource"`
	Attribution *domain.AttributionEntry `json:"attribution"`
}

// ReserveHandler handles the reserve command
type ReserveHandler struct {
	store     domain.ReservationStore
	directory TechnicianDirectory
	cache     domain.AggregateCache
	publisher MovementPublisher
}

// NewReserveHandler creates a new reserve handler. directory, cache and
// publisher may be nil; the corresponding step is skipped.
func NewReserveHandler(store domain.ReservationStore, directory TechnicianDirectory, cache domain.AggregateCache, publisher MovementPublisher) *ReserveHandler {
	return &ReserveHandler{store: store, directory: directory, cache: cache, publisher: publisher}
}

// Handle executes the reserve command
func (h *ReserveHandler) Handle(ctx context.Context, cmd ReserveCommand) (*ReserveResult, error) {
	// Fail fast before touching storage; the store re-validates under lock
	if !domain.ValidQuantity(cmd.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	if cmd.TechnicianID == 0 {
		return nil, fmt.Errorf("technician is required")
	}
	if cmd.Author == "" {
		return nil, fmt.Errorf("author is required")
	}

	if h.directory != nil {
		technician, err := h.directory.GetTechnician(ctx, cmd.TechnicianID)
		if err != nil {
			if errors.Is(err, client.ErrUserNotFound) {
				return nil, fmt.Errorf("technician %d does not exist", cmd.TechnicianID)
			}
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		if !technician.IsActive {
			return nil, fmt.Errorf("technician account is deactivated")
		}
	}

	resource, entry, err := h.store.Reserve(ctx, domain.ReserveParams{
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

	h.afterCommit(ctx, resource, entry, domain.MovementAssign)
	return &ReserveResult{Resource: resource, Attribution: entry}, nil
}

// afterCommit runs the post-commit side effects shared by reserve and
// release: drop the cached fold, then emit the audit event
func (h *ReserveHandler) afterCommit(ctx context.Context, resource *domain.Resource, entry *domain.AttributionEntry, action domain.MovementAction) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, resource.Type, resource.ID)
	}
	if h.publisher == nil {
		return
	}

	event := kafka.StockMovementEvent{
		Action:        action,
		ResourceType:  resource.Type,
		ResourceID:    resource.ID,
		Quantity:      float64(entry.Quantity),
		Author:        entry.Author,
		AttributionID: entry.ID,
	}
	if entry.ToUserID != nil {
		event.TechnicianID = *entry.ToUserID
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

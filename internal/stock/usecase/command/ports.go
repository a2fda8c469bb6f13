package command

import (
	"context"

	"github.com/fleetops/depot-backend/internal/stock/client"
	"github.com/fleetops/depot-backend/kafka"
)

// TechnicianDirectory resolves attribution targets against the user
// service. Resolution happens once here, at the boundary, so downstream
// code only ever sees a validated technician id.
type TechnicianDirectory interface {
	GetTechnician(ctx context.Context, id uint) (*client.Technician, error)
}

// MovementPublisher emits stock movement events after a commit. Event
// loss is tolerated; the ledger stays the source of truth.
type MovementPublisher interface {
	PublishStockMovement(ctx context.Context, event kafka.StockMovementEvent) error
}

package kafka

import (
	"time"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// StockMovementEvent is emitted after every committed protocol operation
// (assign, release, cancel, transfer). Consumers must treat the ledger as
// the source of truth; events are an audit stream, not a second ledger.
type StockMovementEvent struct {
	EventID       string                `json:"event_id"`
	EventType     string                `json:"event_type"`
	Action        domain.MovementAction `json:"action"`
	ResourceType  domain.ResourceType   `json:"resource_type"`
	ResourceID    uint                  `json:"resource_id"`
	Quantity      float64               `json:"quantity"`
	TechnicianID  uint                  `json:"technician_id,omitempty"`
	DepotID       uint                  `json:"depot_id,omitempty"`
	AttributionID uint                  `json:"attribution_id,omitempty"`
	Author        string                `json:"author"`
	Timestamp     time.Time             `json:"timestamp"`
}

// Event types
const (
	EventTypeStockMovement = "stock.movement"
)

// Kafka topics
const (
	TopicStockMovements = "stock-movements"
)

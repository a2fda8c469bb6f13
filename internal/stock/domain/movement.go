package domain

import (
	"time"
)

// MovementAction covers every stock-affecting event, a superset of the
// attribution ledger actions
type MovementAction string

const (
	MovementIn       MovementAction = "IN"
	MovementOut      MovementAction = "OUT"
	MovementTransfer MovementAction = "TRANSFER"
	MovementAssign   MovementAction = "ASSIGN"
	MovementRelease  MovementAction = "RELEASE"
	MovementAdjust   MovementAction = "ADJUST"
	MovementCreate   MovementAction = "CREATE"
	MovementUpdate   MovementAction = "UPDATE"
	MovementDelete   MovementAction = "DELETE"
)

// EndpointKind types the from/to ends of a movement
type EndpointKind string

const (
	EndpointDepot    EndpointKind = "DEPOT"
	EndpointUser     EndpointKind = "USER"
	EndpointSupplier EndpointKind = "SUPPLIER"
	EndpointExternal EndpointKind = "EXTERNAL"
	EndpointNone     EndpointKind = "NONE"
)

// Movement is the broad stock event log used for cross-resource history
// and export. Movements in CANCELED status are excluded from every
// derived aggregate.
type Movement struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	ResourceType  ResourceType   `json:"resource_type" gorm:"not null;index:idx_movement_resource"`
	ResourceID    uint           `json:"resource_id" gorm:"not null;index:idx_movement_resource"`
	Action        MovementAction `json:"action" gorm:"not null;index"`
	FromKind      EndpointKind   `json:"from_kind" gorm:"not null;default:'NONE'"`
	FromID        *uint          `json:"from_id"`
	ToKind        EndpointKind   `json:"to_kind" gorm:"not null;default:'NONE'"`
	ToID          *uint          `json:"to_id"`
	Quantity      float64        `json:"quantity" gorm:"not null;default:0"`
	Unit          string         `json:"unit"`
	Author        string         `json:"author" gorm:"not null"`
	Status        EntryStatus    `json:"status" gorm:"not null;default:'COMMITTED'"`
	AttributionID *uint          `json:"attribution_id" gorm:"index"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName specifies the table name
func (Movement) TableName() string {
	return "movements"
}

// MovementFilter narrows movement listings
type MovementFilter struct {
	ResourceType ResourceType
	ResourceID   uint
	Action       MovementAction
	Page         int
	Limit        int
}

// MovementRepository defines the contract for movement log access.
// FindAll pages for display; ListAll returns every matching row and backs
// the export, which must never truncate.
type MovementRepository interface {
	Create(movement *Movement) error
	FindAll(filter MovementFilter) ([]Movement, int64, error)
	ListAll(filter MovementFilter) ([]Movement, error)
	MarkCanceledByAttribution(attributionID uint) error
}

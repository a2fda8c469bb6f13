package domain

import "context"

// ReserveParams carries one reservation or release attempt
type ReserveParams struct {
	ResourceType ResourceType
	ResourceID   uint
	Quantity     float64
	TechnicianID uint
	DepotID      *uint
	Author       string
	Note         string
}

// ResourceUpdate carries a metadata or stock-ceiling edit. Nil fields are
// left untouched. AssignedQuantity is deliberately absent: it only moves
// through the reservation protocol.
type ResourceUpdate struct {
	ResourceType ResourceType
	ResourceID   uint
	Name         *string
	Unit         *string
	Quantity     *float64
	MinQuantity  *float64
	Author       string
}

// ReservationStore is the only sanctioned way to move quantity between
// depot-available and technician-held, and to edit the stock ceiling the
// protocol validates against. Each call validates against live state under
// a lock and commits the resource mutation, the ledger append and the
// movement record as one unit; a rejection leaves nothing behind.
type ReservationStore interface {
	Reserve(ctx context.Context, p ReserveParams) (*Resource, *AttributionEntry, error)
	Release(ctx context.Context, p ReserveParams) (*Resource, *AttributionEntry, error)
	CancelAttribution(ctx context.Context, entryID uint, author string) (*Resource, *AttributionEntry, error)
	TransferDepot(ctx context.Context, resourceType ResourceType, resourceID uint, toDepotID *uint, author string) (*Resource, *Movement, error)
	UpdateDetails(ctx context.Context, u ResourceUpdate) (*Resource, *Movement, error)
}

package domain

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ResourceType discriminates the three stocked resource families
type ResourceType string

const (
	ResourceMaterial   ResourceType = "material"
	ResourceConsumable ResourceType = "consumable"
	ResourceVehicle    ResourceType = "vehicle"
)

// ParseResourceType maps a route segment (plural) or a stored value
// (singular) to a ResourceType
func ParseResourceType(s string) (ResourceType, error) {
	switch s {
	case "material", "materials":
		return ResourceMaterial, nil
	case "consumable", "consumables":
		return ResourceConsumable, nil
	case "vehicle", "vehicles":
		return ResourceVehicle, nil
	}
	return "", fmt.Errorf("unknown resource type %q", s)
}

// Resource represents one stocked resource instance. Quantity is the total
// owned amount; AssignedQuantity is the share currently held by technicians.
// AssignedQuantity never exceeds Quantity and never goes negative; all
// mutation of AssignedQuantity goes through the reservation protocol.
type Resource struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Type             ResourceType   `json:"type" gorm:"not null;index"`
	Name             string         `json:"name" gorm:"not null"`
	Unit             string         `json:"unit" gorm:"default:'unit'"`
	Quantity         float64        `json:"quantity" gorm:"not null;default:0"`
	AssignedQuantity float64        `json:"assigned_quantity" gorm:"not null;default:0"`
	MinQuantity      float64        `json:"min_quantity" gorm:"not null;default:0"`
	DepotID          *uint          `json:"depot_id" gorm:"index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Resource) TableName() string {
	return "resources"
}

// Available returns the quantity still at the depot, clamped at zero.
// A negative raw value means the stored numbers are inconsistent; callers
// should check Inconsistent and log it rather than trust the clamp.
func (r *Resource) Available() float64 {
	available := r.Quantity - r.AssignedQuantity
	if available < 0 {
		return 0
	}
	return available
}

// Inconsistent reports whether the stored stock numbers violate the
// assigned <= quantity invariant
func (r *Resource) Inconsistent() bool {
	return r.AssignedQuantity < 0 || r.AssignedQuantity > r.Quantity
}

// ApplyAssign moves qty from depot-available to technician-held.
// Fails with ErrInvalidQuantity or ErrInsufficientStock; on failure the
// receiver is left untouched.
func (r *Resource) ApplyAssign(qty float64) error {
	if !ValidQuantity(qty) {
		return ErrInvalidQuantity
	}
	if qty > r.Available() {
		return ErrInsufficientStock
	}
	r.AssignedQuantity += qty
	return nil
}

// ApplyRelease returns qty from a technician back to the depot. The caller
// supplies held, that technician's current holding from the ledger fold;
// the resource-wide AssignedQuantity is not a valid gate because several
// technicians may hold portions of the same pool.
func (r *Resource) ApplyRelease(qty, held float64) error {
	if !ValidQuantity(qty) {
		return ErrInvalidQuantity
	}
	if qty > held {
		return ErrExceedsAssigned
	}
	r.AssignedQuantity -= qty
	if r.AssignedQuantity < 0 {
		r.AssignedQuantity = 0
	}
	return nil
}

// ResourceFilter narrows resource listings
type ResourceFilter struct {
	Type    ResourceType
	DepotID *uint
	Page    int
	Limit   int
}

// ResourceRepository defines the contract for resource data access
type ResourceRepository interface {
	Create(resource *Resource) error
	FindByID(id uint) (*Resource, error)
	FindAll(filter ResourceFilter) ([]Resource, int64, error)
	FindLowStock(limit, offset int) ([]Resource, error)
	Update(resource *Resource) error
	Delete(id uint) error
}

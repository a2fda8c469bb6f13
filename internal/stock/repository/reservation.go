package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// GormReservationStore implements the reservation/release protocol on top
// of PostgreSQL. Every operation runs in one transaction with the resource
// row locked (SELECT ... FOR UPDATE), so concurrent assign/release attempts
// against the same resource serialize on the row and validation always sees
// committed state. A rejection rolls the transaction back untouched.
type GormReservationStore struct {
	db *gorm.DB
}

// NewGormReservationStore creates a new reservation store
func NewGormReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{db: db}
}

// lockResource loads a resource row under FOR UPDATE
func lockResource(tx *gorm.DB, resourceType domain.ResourceType, id uint) (*domain.Resource, error) {
	var resource domain.Resource
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&resource, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock resource: %w", err)
	}
	if resourceType != "" && resource.Type != resourceType {
		return nil, domain.ErrNotFound
	}
	return &resource, nil
}

// assignedTo folds the resource's full ledger inside the transaction,
// using the same fold the read side exposes
func assignedTo(tx *gorm.DB, resource *domain.Resource, technicianID uint) (float64, error) {
	var entries []domain.AttributionEntry
	err := tx.Where("resource_type = ? AND resource_id = ?", resource.Type, resource.ID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load ledger for aggregation: %w", err)
	}
	return domain.AssignedTo(entries, technicianID), nil
}

// Reserve moves quantity from depot-available to technician-held
func (s *GormReservationStore) Reserve(ctx context.Context, p domain.ReserveParams) (*domain.Resource, *domain.AttributionEntry, error) {
	if !domain.ValidQuantity(p.Quantity) {
		return nil, nil, domain.ErrInvalidQuantity
	}

	var resource *domain.Resource
	var entry domain.AttributionEntry

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		resource, err = lockResource(tx, p.ResourceType, p.ResourceID)
		if err != nil {
			return err
		}

		if err := resource.ApplyAssign(p.Quantity); err != nil {
			return err
		}
		if err := tx.Save(resource).Error; err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}

		technicianID := p.TechnicianID
		depotID := p.DepotID
		if depotID == nil {
			depotID = resource.DepotID
		}

		entry = domain.AttributionEntry{
			ResourceType: resource.Type,
			ResourceID:   resource.ID,
			Action:       domain.ActionAttribution,
			Quantity:     domain.Quantity(p.Quantity),
			ToUserID:     &technicianID,
			FromDepotID:  depotID,
			Author:       p.Author,
			Note:         p.Note,
			Status:       domain.StatusCommitted,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		movement := domain.Movement{
			ResourceType:  resource.Type,
			ResourceID:    resource.ID,
			Action:        domain.MovementAssign,
			FromKind:      domain.EndpointDepot,
			FromID:        depotID,
			ToKind:        domain.EndpointUser,
			ToID:          &technicianID,
			Quantity:      p.Quantity,
			Unit:          resource.Unit,
			Author:        p.Author,
			Status:        domain.StatusCommitted,
			AttributionID: &entry.ID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return resource, &entry, nil
}

// Release returns quantity from a technician back to the depot. The gate
// is that technician's net holding from the ledger fold, not the
// resource-wide assigned quantity.
func (s *GormReservationStore) Release(ctx context.Context, p domain.ReserveParams) (*domain.Resource, *domain.AttributionEntry, error) {
	if !domain.ValidQuantity(p.Quantity) {
		return nil, nil, domain.ErrInvalidQuantity
	}

	var resource *domain.Resource
	var entry domain.AttributionEntry

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		resource, err = lockResource(tx, p.ResourceType, p.ResourceID)
		if err != nil {
			return err
		}

		held, err := assignedTo(tx, resource, p.TechnicianID)
		if err != nil {
			return err
		}
		if err := resource.ApplyRelease(p.Quantity, held); err != nil {
			return err
		}
		if err := tx.Save(resource).Error; err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}

		technicianID := p.TechnicianID
		depotID := p.DepotID
		if depotID == nil {
			depotID = resource.DepotID
		}

		entry = domain.AttributionEntry{
			ResourceType: resource.Type,
			ResourceID:   resource.ID,
			Action:       domain.ActionReprise,
			Quantity:     domain.Quantity(p.Quantity),
			ToUserID:     &technicianID,
			FromDepotID:  depotID,
			Author:       p.Author,
			Note:         p.Note,
			Status:       domain.StatusCommitted,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		movement := domain.Movement{
			ResourceType:  resource.Type,
			ResourceID:    resource.ID,
			Action:        domain.MovementRelease,
			FromKind:      domain.EndpointUser,
			FromID:        &technicianID,
			ToKind:        domain.EndpointDepot,
			ToID:          depotID,
			Quantity:      p.Quantity,
			Unit:          resource.Unit,
			Author:        p.Author,
			Status:        domain.StatusCommitted,
			AttributionID: &entry.ID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return resource, &entry, nil
}

// CancelAttribution flips a committed entry to CANCELED and compensates
// the resource's assigned quantity by the entry's effect, all in one
// transaction. The entry itself is never edited beyond the status flip.
func (s *GormReservationStore) CancelAttribution(ctx context.Context, entryID uint, author string) (*domain.Resource, *domain.AttributionEntry, error) {
	var resource *domain.Resource
	var entry domain.AttributionEntry

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load ledger entry: %w", err)
		}
		if entry.Canceled() {
			return domain.ErrAlreadyCanceled
		}

		var err error
		resource, err = lockResource(tx, entry.ResourceType, entry.ResourceID)
		if err != nil {
			return err
		}

		qty := float64(entry.Quantity)
		switch entry.Action {
		case domain.ActionAttribution:
			resource.AssignedQuantity -= qty
			if resource.AssignedQuantity < 0 {
				resource.AssignedQuantity = 0
			}
		case domain.ActionReprise:
			resource.AssignedQuantity += qty
			if resource.AssignedQuantity > resource.Quantity {
				resource.AssignedQuantity = resource.Quantity
			}
		}
		if err := tx.Save(resource).Error; err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}

		result := tx.Model(&domain.AttributionEntry{}).
			Where("id = ? AND status = ?", entry.ID, domain.StatusCommitted).
			Update("status", domain.StatusCanceled)
		if result.Error != nil {
			return fmt.Errorf("failed to cancel ledger entry: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrAlreadyCanceled
		}
		entry.Status = domain.StatusCanceled

		err = tx.Model(&domain.Movement{}).
			Where("attribution_id = ?", entry.ID).
			Update("status", domain.StatusCanceled).Error
		if err != nil {
			return fmt.Errorf("failed to cancel movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return resource, &entry, nil
}

// UpdateDetails edits a resource's metadata and stock ceiling under the
// same row lock the protocol uses, so the quantity guard always sees the
// committed assigned quantity rather than a stale snapshot. A quantity
// change records an IN/OUT adjustment movement in the same transaction.
func (s *GormReservationStore) UpdateDetails(ctx context.Context, u domain.ResourceUpdate) (*domain.Resource, *domain.Movement, error) {
	var resource *domain.Resource
	var movement *domain.Movement

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		resource, err = lockResource(tx, u.ResourceType, u.ResourceID)
		if err != nil {
			return err
		}

		previousQuantity := resource.Quantity

		if u.Name != nil {
			resource.Name = *u.Name
		}
		if u.Unit != nil {
			resource.Unit = *u.Unit
		}
		if u.MinQuantity != nil {
			resource.MinQuantity = *u.MinQuantity
		}
		if u.Quantity != nil {
			if *u.Quantity < 0 {
				return domain.ErrInvalidQuantity
			}
			// The total cannot drop below what technicians currently hold
			if *u.Quantity < resource.AssignedQuantity {
				return domain.ErrQuantityBelowAssigned
			}
			resource.Quantity = *u.Quantity
		}

		if err := tx.Save(resource).Error; err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}

		if u.Quantity == nil || *u.Quantity == previousQuantity {
			return nil
		}

		delta := *u.Quantity - previousQuantity
		action := domain.MovementIn
		fromKind, toKind := domain.EndpointSupplier, domain.EndpointDepot
		if delta < 0 {
			action = domain.MovementOut
			fromKind, toKind = domain.EndpointDepot, domain.EndpointExternal
			delta = -delta
		}
		movement = &domain.Movement{
			ResourceType: resource.Type,
			ResourceID:   resource.ID,
			Action:       action,
			FromKind:     fromKind,
			ToKind:       toKind,
			Quantity:     delta,
			Unit:         resource.Unit,
			Author:       u.Author,
			Status:       domain.StatusCommitted,
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return resource, movement, nil
}

// TransferDepot moves a resource to another depot and records a TRANSFER
// movement. Stock numbers are untouched.
func (s *GormReservationStore) TransferDepot(ctx context.Context, resourceType domain.ResourceType, resourceID uint, toDepotID *uint, author string) (*domain.Resource, *domain.Movement, error) {
	var resource *domain.Resource
	var movement domain.Movement

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		resource, err = lockResource(tx, resourceType, resourceID)
		if err != nil {
			return err
		}

		fromID := resource.DepotID
		resource.DepotID = toDepotID
		if err := tx.Save(resource).Error; err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}

		toKind := domain.EndpointDepot
		if toDepotID == nil {
			toKind = domain.EndpointNone
		}
		fromKind := domain.EndpointDepot
		if fromID == nil {
			fromKind = domain.EndpointNone
		}

		movement = domain.Movement{
			ResourceType: resource.Type,
			ResourceID:   resource.ID,
			Action:       domain.MovementTransfer,
			FromKind:     fromKind,
			FromID:       fromID,
			ToKind:       toKind,
			ToID:         toDepotID,
			Quantity:     resource.Quantity,
			Unit:         resource.Unit,
			Author:       author,
			Status:       domain.StatusCommitted,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return resource, &movement, nil
}

package memory

import (
	"context"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// ReservationStore implements domain.ReservationStore on the in-memory
// store. The store mutex plays the role of the database row lock: one
// protocol operation at a time, rejections leave nothing behind.
type ReservationStore struct {
	s *Store
}

func (rs *ReservationStore) Reserve(ctx context.Context, p domain.ReserveParams) (*domain.Resource, *domain.AttributionEntry, error) {
	if !domain.ValidQuantity(p.Quantity) {
		return nil, nil, domain.ErrInvalidQuantity
	}

	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	resource, ok := rs.s.resources[p.ResourceID]
	if !ok || resource.Type != p.ResourceType {
		return nil, nil, domain.ErrNotFound
	}

	if err := resource.ApplyAssign(p.Quantity); err != nil {
		return nil, nil, err
	}

	technicianID := p.TechnicianID
	depotID := p.DepotID
	if depotID == nil {
		depotID = resource.DepotID
	}

	entry := domain.AttributionEntry{
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
	rs.s.append(&entry)

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
	rs.s.record(&movement)

	rs.s.resources[resource.ID] = resource
	return &resource, &entry, nil
}

func (rs *ReservationStore) Release(ctx context.Context, p domain.ReserveParams) (*domain.Resource, *domain.AttributionEntry, error) {
	if !domain.ValidQuantity(p.Quantity) {
		return nil, nil, domain.ErrInvalidQuantity
	}

	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	resource, ok := rs.s.resources[p.ResourceID]
	if !ok || resource.Type != p.ResourceType {
		return nil, nil, domain.ErrNotFound
	}

	held := domain.AssignedTo(rs.s.entriesFor(resource.Type, resource.ID), p.TechnicianID)
	if err := resource.ApplyRelease(p.Quantity, held); err != nil {
		return nil, nil, err
	}

	technicianID := p.TechnicianID
	depotID := p.DepotID
	if depotID == nil {
		depotID = resource.DepotID
	}

	entry := domain.AttributionEntry{
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
	rs.s.append(&entry)

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
	rs.s.record(&movement)

	rs.s.resources[resource.ID] = resource
	return &resource, &entry, nil
}

func (rs *ReservationStore) CancelAttribution(ctx context.Context, entryID uint, author string) (*domain.Resource, *domain.AttributionEntry, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	var entry *domain.AttributionEntry
	for i := range rs.s.entries {
		if rs.s.entries[i].ID == entryID {
			entry = &rs.s.entries[i]
			break
		}
	}
	if entry == nil {
		return nil, nil, domain.ErrNotFound
	}
	if entry.Canceled() {
		return nil, nil, domain.ErrAlreadyCanceled
	}

	resource, ok := rs.s.resources[entry.ResourceID]
	if !ok {
		return nil, nil, domain.ErrNotFound
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

	entry.Status = domain.StatusCanceled
	for i := range rs.s.movements {
		if rs.s.movements[i].AttributionID != nil && *rs.s.movements[i].AttributionID == entry.ID {
			rs.s.movements[i].Status = domain.StatusCanceled
		}
	}

	rs.s.resources[resource.ID] = resource
	canceled := *entry
	return &resource, &canceled, nil
}

func (rs *ReservationStore) UpdateDetails(ctx context.Context, u domain.ResourceUpdate) (*domain.Resource, *domain.Movement, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	resource, ok := rs.s.resources[u.ResourceID]
	if !ok || resource.Type != u.ResourceType {
		return nil, nil, domain.ErrNotFound
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
			return nil, nil, domain.ErrInvalidQuantity
		}
		// The total cannot drop below what technicians currently hold
		if *u.Quantity < resource.AssignedQuantity {
			return nil, nil, domain.ErrQuantityBelowAssigned
		}
		resource.Quantity = *u.Quantity
	}

	var movement *domain.Movement
	if u.Quantity != nil && *u.Quantity != previousQuantity {
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
		rs.s.record(movement)
	}

	rs.s.resources[resource.ID] = resource
	return &resource, movement, nil
}

func (rs *ReservationStore) TransferDepot(ctx context.Context, resourceType domain.ResourceType, resourceID uint, toDepotID *uint, author string) (*domain.Resource, *domain.Movement, error) {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	resource, ok := rs.s.resources[resourceID]
	if !ok || (resourceType != "" && resource.Type != resourceType) {
		return nil, nil, domain.ErrNotFound
	}

	fromID := resource.DepotID
	resource.DepotID = toDepotID

	fromKind := domain.EndpointDepot
	if fromID == nil {
		fromKind = domain.EndpointNone
	}
	toKind := domain.EndpointDepot
	if toDepotID == nil {
		toKind = domain.EndpointNone
	}

	movement := domain.Movement{
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
	rs.s.record(&movement)

	rs.s.resources[resource.ID] = resource
	return &resource, &movement, nil
}

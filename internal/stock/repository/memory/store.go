// Package memory provides in-memory implementations of the stock
// repositories. They back package tests and keep the reservation protocol
// runnable without PostgreSQL; semantics mirror the GORM implementations.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// Store holds all stock state behind one mutex, standing in for the
// database transaction: every protocol operation is atomic with respect
// to every other.
type Store struct {
	mu             sync.Mutex
	resources      map[uint]domain.Resource
	entries        []domain.AttributionEntry
	movements      []domain.Movement
	depots         map[uint]domain.Depot
	nextResourceID uint
	nextEntryID    uint
	nextMovementID uint
	nextDepotID    uint
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		resources: make(map[uint]domain.Resource),
		depots:    make(map[uint]domain.Depot),
	}
}

// Resources returns the resource repository view
func (s *Store) Resources() *ResourceRepository { return &ResourceRepository{s: s} }

// Ledger returns the ledger repository view
func (s *Store) Ledger() *LedgerRepository { return &LedgerRepository{s: s} }

// Movements returns the movement repository view
func (s *Store) Movements() *MovementRepository { return &MovementRepository{s: s} }

// Depots returns the depot repository view
func (s *Store) Depots() *DepotRepository { return &DepotRepository{s: s} }

// Reservations returns the reservation store view
func (s *Store) Reservations() *ReservationStore { return &ReservationStore{s: s} }

// ResourceRepository implements domain.ResourceRepository
type ResourceRepository struct {
	s *Store
}

func (r *ResourceRepository) Create(resource *domain.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextResourceID++
	resource.ID = r.s.nextResourceID
	resource.CreatedAt = time.Now()
	resource.UpdatedAt = resource.CreatedAt
	r.s.resources[resource.ID] = *resource
	return nil
}

func (r *ResourceRepository) FindByID(id uint) (*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	resource, ok := r.s.resources[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &resource, nil
}

func (r *ResourceRepository) FindAll(filter domain.ResourceFilter) ([]domain.Resource, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []domain.Resource
	for _, resource := range r.s.resources {
		if filter.Type != "" && resource.Type != filter.Type {
			continue
		}
		if filter.DepotID != nil && (resource.DepotID == nil || *resource.DepotID != *filter.DepotID) {
			continue
		}
		matched = append(matched, resource)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *ResourceRepository) FindLowStock(limit, offset int) ([]domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var low []domain.Resource
	for _, resource := range r.s.resources {
		if resource.Available() < resource.MinQuantity {
			low = append(low, resource)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].ID < low[j].ID })
	if offset >= len(low) {
		return nil, nil
	}
	low = low[offset:]
	if limit > 0 && limit < len(low) {
		low = low[:limit]
	}
	return low, nil
}

func (r *ResourceRepository) Update(resource *domain.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.resources[resource.ID]; !ok {
		return domain.ErrNotFound
	}
	resource.UpdatedAt = time.Now()
	r.s.resources[resource.ID] = *resource
	return nil
}

func (r *ResourceRepository) Delete(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.resources[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.resources, id)
	return nil
}

// LedgerRepository implements domain.LedgerRepository
type LedgerRepository struct {
	s *Store
}

func (r *LedgerRepository) Append(entry *domain.AttributionEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.append(entry)
	return nil
}

// append assumes the store lock is held
func (s *Store) append(entry *domain.AttributionEntry) {
	s.nextEntryID++
	entry.ID = s.nextEntryID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, *entry)
}

func (r *LedgerRepository) FindByID(id uint) (*domain.AttributionEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.entries {
		if r.s.entries[i].ID == id {
			entry := r.s.entries[i]
			return &entry, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *LedgerRepository) PageByResource(resourceType domain.ResourceType, resourceID uint, page, limit int) (*domain.LedgerPage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := r.s.entriesFor(resourceType, resourceID)
	// Most recent first for history display
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return &domain.LedgerPage{Total: total, Page: page, Limit: limit}, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return &domain.LedgerPage{Total: total, Page: page, Limit: limit, Items: matched[start:end]}, nil
}

func (r *LedgerRepository) ListByResource(resourceType domain.ResourceType, resourceID uint) ([]domain.AttributionEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.entriesFor(resourceType, resourceID), nil
}

// entriesFor assumes the store lock is held
func (s *Store) entriesFor(resourceType domain.ResourceType, resourceID uint) []domain.AttributionEntry {
	var matched []domain.AttributionEntry
	for _, entry := range s.entries {
		if entry.ResourceType == resourceType && entry.ResourceID == resourceID {
			matched = append(matched, entry)
		}
	}
	return matched
}

func (r *LedgerRepository) MarkCanceled(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.entries {
		if r.s.entries[i].ID == id {
			if r.s.entries[i].Status == domain.StatusCanceled {
				return domain.ErrAlreadyCanceled
			}
			r.s.entries[i].Status = domain.StatusCanceled
			return nil
		}
	}
	return domain.ErrNotFound
}

// MovementRepository implements domain.MovementRepository
type MovementRepository struct {
	s *Store
}

func (r *MovementRepository) Create(movement *domain.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record(movement)
	return nil
}

// record assumes the store lock is held
func (s *Store) record(movement *domain.Movement) {
	s.nextMovementID++
	movement.ID = s.nextMovementID
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	movement.UpdatedAt = movement.CreatedAt
	s.movements = append(s.movements, *movement)
}

func (r *MovementRepository) FindAll(filter domain.MovementFilter) ([]domain.Movement, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []domain.Movement
	for _, movement := range r.s.movements {
		if filter.ResourceType != "" && movement.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != 0 && movement.ResourceID != filter.ResourceID {
			continue
		}
		if filter.Action != "" && movement.Action != filter.Action {
			continue
		}
		matched = append(matched, movement)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MovementRepository) ListAll(filter domain.MovementFilter) ([]domain.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []domain.Movement
	for _, movement := range r.s.movements {
		if filter.ResourceType != "" && movement.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != 0 && movement.ResourceID != filter.ResourceID {
			continue
		}
		if filter.Action != "" && movement.Action != filter.Action {
			continue
		}
		matched = append(matched, movement)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return matched, nil
}

func (r *MovementRepository) MarkCanceledByAttribution(attributionID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.movements {
		if r.s.movements[i].AttributionID != nil && *r.s.movements[i].AttributionID == attributionID {
			r.s.movements[i].Status = domain.StatusCanceled
		}
	}
	return nil
}

// DepotRepository implements domain.DepotRepository
type DepotRepository struct {
	s *Store
}

func (r *DepotRepository) Create(depot *domain.Depot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextDepotID++
	depot.ID = r.s.nextDepotID
	depot.CreatedAt = time.Now()
	depot.UpdatedAt = depot.CreatedAt
	r.s.depots[depot.ID] = *depot
	return nil
}

func (r *DepotRepository) FindByID(id uint) (*domain.Depot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	depot, ok := r.s.depots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &depot, nil
}

func (r *DepotRepository) FindAll(limit, offset int) ([]domain.Depot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var depots []domain.Depot
	for _, depot := range r.s.depots {
		depots = append(depots, depot)
	}
	sort.Slice(depots, func(i, j int) bool { return depots[i].Name < depots[j].Name })
	if offset >= len(depots) {
		return nil, nil
	}
	depots = depots[offset:]
	if limit > 0 && limit < len(depots) {
		depots = depots[:limit]
	}
	return depots, nil
}

func (r *DepotRepository) Update(depot *domain.Depot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.depots[depot.ID]; !ok {
		return domain.ErrNotFound
	}
	depot.UpdatedAt = time.Now()
	r.s.depots[depot.ID] = *depot
	return nil
}

func (r *DepotRepository) Delete(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.depots[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.depots, id)
	return nil
}

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// GormLedgerRepository implements LedgerRepository using GORM. The table
// is append-only: nothing here updates an entry's business fields.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append inserts a new ledger entry
func (r *GormLedgerRepository) Append(entry *domain.AttributionEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// FindByID retrieves a ledger entry by ID
func (r *GormLedgerRepository) FindByID(id uint) (*domain.AttributionEntry, error) {
	var entry domain.AttributionEntry
	if err := r.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry: %w", err)
	}
	return &entry, nil
}

// PageByResource returns one page of a resource's history, most recent
// first. Pagination is a read-side concern only; aggregation never uses
// a page.
func (r *GormLedgerRepository) PageByResource(resourceType domain.ResourceType, resourceID uint, page, limit int) (*domain.LedgerPage, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	query := r.db.Model(&domain.AttributionEntry{}).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	var items []domain.AttributionEntry
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to page ledger entries: %w", err)
	}

	return &domain.LedgerPage{Total: total, Page: page, Limit: limit, Items: items}, nil
}

// ListByResource returns a resource's full ledger in insertion order,
// for aggregation
func (r *GormLedgerRepository) ListByResource(resourceType domain.ResourceType, resourceID uint) ([]domain.AttributionEntry, error) {
	var entries []domain.AttributionEntry
	err := r.db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

// MarkCanceled flips an entry's status to CANCELED. The only permitted
// mutation of an existing entry.
func (r *GormLedgerRepository) MarkCanceled(id uint) error {
	result := r.db.Model(&domain.AttributionEntry{}).
		Where("id = ? AND status = ?", id, domain.StatusCommitted).
		Update("status", domain.StatusCanceled)
	if result.Error != nil {
		return fmt.Errorf("failed to cancel ledger entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyCanceled
	}
	return nil
}

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// GormResourceRepository implements ResourceRepository using GORM
type GormResourceRepository struct {
	db *gorm.DB
}

// NewGormResourceRepository creates a new GORM resource repository
func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

// Create inserts a new resource
func (r *GormResourceRepository) Create(resource *domain.Resource) error {
	if err := r.db.Create(resource).Error; err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

// FindByID retrieves a resource by ID
func (r *GormResourceRepository) FindByID(id uint) (*domain.Resource, error) {
	var resource domain.Resource
	if err := r.db.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return &resource, nil
}

// FindAll retrieves resources matching the filter, newest first, with the
// total count for pagination
func (r *GormResourceRepository) FindAll(filter domain.ResourceFilter) ([]domain.Resource, int64, error) {
	query := r.db.Model(&domain.Resource{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.DepotID != nil {
		query = query.Where("depot_id = ?", *filter.DepotID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count resources: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var resources []domain.Resource
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&resources).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find resources: %w", err)
	}
	return resources, total, nil
}

// FindLowStock retrieves resources whose available quantity dropped below
// their configured minimum
func (r *GormResourceRepository) FindLowStock(limit, offset int) ([]domain.Resource, error) {
	if limit <= 0 {
		limit = 10
	}
	var resources []domain.Resource
	err := r.db.Where("quantity - assigned_quantity < min_quantity").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&resources).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock resources: %w", err)
	}
	return resources, nil
}

// Update updates a resource's metadata and stock numbers
func (r *GormResourceRepository) Update(resource *domain.Resource) error {
	if err := r.db.Save(resource).Error; err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}
	return nil
}

// Delete soft deletes a resource
func (r *GormResourceRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Resource{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete resource: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AutoMigrate runs database migrations for all stock entities
func (r *GormResourceRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Resource{},
		&domain.AttributionEntry{},
		&domain.Movement{},
		&domain.Depot{},
	)
}

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// GormDepotRepository implements DepotRepository using GORM
type GormDepotRepository struct {
	db *gorm.DB
}

// NewGormDepotRepository creates a new GORM depot repository
func NewGormDepotRepository(db *gorm.DB) *GormDepotRepository {
	return &GormDepotRepository{db: db}
}

// Create inserts a new depot
func (r *GormDepotRepository) Create(depot *domain.Depot) error {
	if err := r.db.Create(depot).Error; err != nil {
		return fmt.Errorf("failed to create depot: %w", err)
	}
	return nil
}

// FindByID retrieves a depot by ID
func (r *GormDepotRepository) FindByID(id uint) (*domain.Depot, error) {
	var depot domain.Depot
	if err := r.db.First(&depot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find depot: %w", err)
	}
	return &depot, nil
}

// FindAll retrieves depots with pagination
func (r *GormDepotRepository) FindAll(limit, offset int) ([]domain.Depot, error) {
	if limit <= 0 {
		limit = 20
	}
	var depots []domain.Depot
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&depots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find depots: %w", err)
	}
	return depots, nil
}

// Update updates a depot
func (r *GormDepotRepository) Update(depot *domain.Depot) error {
	if err := r.db.Save(depot).Error; err != nil {
		return fmt.Errorf("failed to update depot: %w", err)
	}
	return nil
}

// Delete soft deletes a depot
func (r *GormDepotRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Depot{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete depot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

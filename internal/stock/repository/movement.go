package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GORM movement repository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create inserts a new movement record
func (r *GormMovementRepository) Create(movement *domain.Movement) error {
	if err := r.db.Create(movement).Error; err != nil {
		return fmt.Errorf("failed to create movement: %w", err)
	}
	return nil
}

// FindAll retrieves movements matching the filter, most recent first
func (r *GormMovementRepository) FindAll(filter domain.MovementFilter) ([]domain.Movement, int64, error) {
	query := r.db.Model(&domain.Movement{})

	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != 0 {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count movements: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var movements []domain.Movement
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&movements).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find movements: %w", err)
	}
	return movements, total, nil
}

// ListAll retrieves every movement matching the filter, most recent
// first, ignoring the filter's paging fields
func (r *GormMovementRepository) ListAll(filter domain.MovementFilter) ([]domain.Movement, error) {
	query := r.db.Model(&domain.Movement{})

	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != 0 {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	var movements []domain.Movement
	err := query.Order("created_at DESC, id DESC").Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// MarkCanceledByAttribution cancels the movement mirroring a canceled
// attribution entry
func (r *GormMovementRepository) MarkCanceledByAttribution(attributionID uint) error {
	err := r.db.Model(&domain.Movement{}).
		Where("attribution_id = ?", attributionID).
		Update("status", domain.StatusCanceled).Error
	if err != nil {
		return fmt.Errorf("failed to cancel movement: %w", err)
	}
	return nil
}

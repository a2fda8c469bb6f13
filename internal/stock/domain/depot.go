package domain

import (
	"time"

	"gorm.io/gorm"
)

// Depot is a physical stock location owning unassigned resource quantity
type Depot struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	Address   string         `json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Depot) TableName() string {
	return "depots"
}

// DepotRepository defines the contract for depot data access
type DepotRepository interface {
	Create(depot *Depot) error
	FindByID(id uint) (*Depot, error)
	FindAll(limit, offset int) ([]Depot, error)
	Update(depot *Depot) error
	Delete(id uint) error
}

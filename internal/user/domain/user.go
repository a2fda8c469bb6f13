package domain

import (
	"time"

	"gorm.io/gorm"
)

// Role types. Technicians are the accounts stock gets attributed to;
// managers run depots, admins run everything.
const (
	RoleTechnician = "technician"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleTechnician || role == RoleManager || role == RoleAdmin
}

// User represents a user account (domain model)
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Username    string         `json:"username" gorm:"uniqueIndex;not null"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null"`
	Password    string         `json:"-" gorm:"not null"` // Never expose password in JSON
	FullName    string         `json:"full_name" gorm:"not null"`
	Role        string         `json:"role" gorm:"not null;default:'technician'"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"` // Soft delete
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTechnician checks if user can receive attributed stock
func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician
}

// UserFilter narrows account listings. Zero fields do not filter;
// Active is a pointer so "only deactivated accounts" is expressible.
type UserFilter struct {
	Role   string
	Active *bool
	Search string // matches username and full name
	Limit  int
	Offset int
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	List(filter UserFilter) ([]User, int64, error)
	Update(user *User) error
	Delete(id uint) error
	CountActive() (int64, error)
	RoleCounts() (map[string]int64, error)
}

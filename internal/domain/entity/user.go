package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Permissions granted per role
const (
	PermissionManageStore = "manage-store"
	PermissionViewReports = "view-reports"
)

var rolePermissions = map[string][]string{
	RoleAdmin:  {PermissionManageStore, PermissionViewReports},
	RoleViewer: {PermissionViewReports},
}

// User represents an admin user of the analytics dashboard
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"`
	Role      string         `gorm:"size:50;default:'viewer'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GetPermissions returns the permissions granted by the user's role
func (u *User) GetPermissions() []string {
	return rolePermissions[u.Role]
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

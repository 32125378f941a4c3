package entity

import (
	"time"

	"gorm.io/gorm"
)

// User is a back-office staff account.
type User struct {
	ID           uint
	Email        string `gorm:"uniqueIndex"`
	FullName     string
	PasswordHash string
	RoleID       uint
	Role         *Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
}

// Role groups permissions.
type Role struct {
	ID          uint
	Name        string `gorm:"uniqueIndex"`
	Permissions []Permission `gorm:"many2many:role_permissions"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission is a single grantable capability, looked up by key
// (e.g. "manifests:write", "jobs:manage").
type Permission struct {
	ID          uint
	Key         string `gorm:"uniqueIndex"`
	Description string
}

// HasPermission reports whether the user's role grants the given key.
func (u *User) HasPermission(key string) bool {
	if u == nil || u.Role == nil {
		return false
	}
	for _, p := range u.Role.Permissions {
		if p.Key == key {
			return true
		}
	}
	return false
}

// TableName keeps the historical table name.
func (User) TableName() string { return "app_users" }

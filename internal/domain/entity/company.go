package entity

import (
	"time"

	"gorm.io/gorm"
)

// Company represents a transport company operating one or more routes.
type Company struct {
	ID            uint
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Active        bool
	Routes        []Route
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt
}

// TableName keeps the historical table name.
func (Company) TableName() string { return "transport_companies" }

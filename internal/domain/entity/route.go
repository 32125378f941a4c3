package entity

import (
	"time"

	"gorm.io/gorm"
)

// Route represents a transport route owned by a company. DurationHours
// is fractional; a non-positive value means the route has no recorded
// duration and the configured default applies during planning.
type Route struct {
	ID                uint
	CompanyID         uint
	Company           *Company
	DepartureLocation string
	Destination       string
	DurationHours     float64
	TypicalDeparture  string
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt
}

// CompanyName returns the owning company's name, or a generic fallback
// when the association was not loaded.
func (r *Route) CompanyName() string {
	if r != nil && r.Company != nil && r.Company.Name != "" {
		return r.Company.Name
	}
	return "Transport Company"
}

package entity

import (
	"time"

	"gorm.io/gorm"
)

// Manifest is one captured trip: the passenger roster header plus trip
// metadata. Immutable after capture except for soft deletion, which
// cascades to passengers and cancels pending jobs.
type Manifest struct {
	ID             uint
	Reference      string `gorm:"uniqueIndex"`
	CompanyID      uint
	Company        *Company
	RouteID        uint
	Route          *Route
	TripDate       string `gorm:"type:date"` // YYYY-MM-DD
	DepartureTime  string // HH:MM, optional; midnight when empty
	PassengerCount int
	ImageURL       string
	Passengers     []Passenger
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}

// Passenger is one roster row. Created in batch with its manifest and
// never edited afterwards. Confidence is the OCR extraction score
// (0-100), informational only.
type Passenger struct {
	ID             uint
	ManifestID     uint
	FullName       string
	PhoneNumber    string
	Email          string
	NextOfKinName  string
	NextOfKinPhone string
	NextOfKinEmail string
	Confidence     int
	CreatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}

// ContactFor returns the phone number and email address for the given
// recipient type.
func (p *Passenger) ContactFor(rt RecipientType) (phone, email string) {
	if rt == RecipientNextOfKin {
		return p.NextOfKinPhone, p.NextOfKinEmail
	}
	return p.PhoneNumber, p.Email
}

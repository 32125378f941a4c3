package repository

import (
	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// AutoMigrate creates or updates every relational table the service
// owns. Schema migration tooling beyond this is out of scope.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Company{},
		&entity.Route{},
		&entity.Manifest{},
		&entity.Passenger{},
		&entity.SMSTemplate{},
		&entity.EmailTemplate{},
		&entity.ScheduleRule{},
		&entity.ScheduledJob{},
		&entity.Permission{},
		&entity.Role{},
		&entity.User{},
	)
}

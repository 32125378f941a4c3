package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/interface/repository"
)

// NewPostgres opens the relational store and migrates the schema.
func NewPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := repository.AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

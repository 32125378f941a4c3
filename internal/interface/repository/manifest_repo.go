package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// GormManifestRepository implements the ManifestRepository interface
type GormManifestRepository struct {
	db *gorm.DB
}

// NewGormManifestRepository creates a new GORM manifest repository
func NewGormManifestRepository(db *gorm.DB) repository.ManifestRepository {
	return &GormManifestRepository{db: db}
}

// CreateWithPassengers persists the manifest and its roster atomically.
func (r *GormManifestRepository) CreateWithPassengers(ctx context.Context, manifest *entity.Manifest, passengers []*entity.Passenger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		manifest.PassengerCount = len(passengers)
		if err := tx.Create(manifest).Error; err != nil {
			return err
		}
		for _, p := range passengers {
			p.ManifestID = manifest.ID
		}
		if len(passengers) == 0 {
			return nil
		}
		return tx.Create(&passengers).Error
	})
}

func (r *GormManifestRepository) GetByID(ctx context.Context, id uint) (*entity.Manifest, error) {
	var manifest entity.Manifest
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Route").
		Preload("Route.Company").
		Preload("Passengers").
		First(&manifest, id).Error
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (r *GormManifestRepository) GetByReference(ctx context.Context, reference string) (*entity.Manifest, error) {
	var manifest entity.Manifest
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Route").
		Preload("Passengers").
		Where("reference = ?", reference).
		First(&manifest).Error
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (r *GormManifestRepository) List(ctx context.Context, limit, offset int) ([]*entity.Manifest, error) {
	var manifests []*entity.Manifest
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Route").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&manifests).Error
	if err != nil {
		return nil, err
	}
	return manifests, nil
}

func (r *GormManifestRepository) Passengers(ctx context.Context, manifestID uint) ([]*entity.Passenger, error) {
	var passengers []*entity.Passenger
	err := r.db.WithContext(ctx).
		Where("manifest_id = ?", manifestID).
		Order("id").
		Find(&passengers).Error
	if err != nil {
		return nil, err
	}
	return passengers, nil
}

// Delete soft-deletes the manifest and its passengers in one
// transaction. Pending job cancellation is the caller's concern.
func (r *GormManifestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manifest_id = ?", id).Delete(&entity.Passenger{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Manifest{}, id).Error
	})
}

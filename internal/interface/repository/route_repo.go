package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// GormRouteRepository implements the RouteRepository interface
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Create(ctx context.Context, route *entity.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *GormRouteRepository) Update(ctx context.Context, route *entity.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *GormRouteRepository) GetByID(ctx context.Context, id uint) (*entity.Route, error) {
	var route entity.Route
	if err := r.db.WithContext(ctx).Preload("Company").First(&route, id).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *GormRouteRepository) ListByCompany(ctx context.Context, companyID uint) ([]*entity.Route, error) {
	var routes []*entity.Route
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("departure_location").
		Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *GormRouteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Route{}, id).Error
}

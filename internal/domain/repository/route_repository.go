package repository

import (
	"context"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// RouteRepository defines persistence for transport routes.
type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	Update(ctx context.Context, route *entity.Route) error
	// GetByID returns the route with its company preloaded.
	GetByID(ctx context.Context, id uint) (*entity.Route, error)
	ListByCompany(ctx context.Context, companyID uint) ([]*entity.Route, error)
	Delete(ctx context.Context, id uint) error
}

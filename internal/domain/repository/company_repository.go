package repository

import (
	"context"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// CompanyRepository defines persistence for transport companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uint) (*entity.Company, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Company, error)
	// Delete soft-deletes the company and its routes.
	Delete(ctx context.Context, id uint) error
}

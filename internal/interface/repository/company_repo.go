package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// GormCompanyRepository implements the CompanyRepository interface
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GORM company repository
func NewGormCompanyRepository(db *gorm.DB) repository.CompanyRepository {
	return &GormCompanyRepository{db: db}
}

func (r *GormCompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *GormCompanyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *GormCompanyRepository) GetByID(ctx context.Context, id uint) (*entity.Company, error) {
	var company entity.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *GormCompanyRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Company, error) {
	var companies []*entity.Company
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Delete soft-deletes the company and its routes in one transaction.
func (r *GormCompanyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&entity.Route{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Company{}, id).Error
	})
}

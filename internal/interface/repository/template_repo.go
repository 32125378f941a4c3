package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// GormSMSTemplateRepository implements the SMSTemplateRepository interface
type GormSMSTemplateRepository struct {
	db *gorm.DB
}

// NewGormSMSTemplateRepository creates a new GORM SMS template repository
func NewGormSMSTemplateRepository(db *gorm.DB) repository.SMSTemplateRepository {
	return &GormSMSTemplateRepository{db: db}
}

func (r *GormSMSTemplateRepository) Create(ctx context.Context, tpl *entity.SMSTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *GormSMSTemplateRepository) Update(ctx context.Context, tpl *entity.SMSTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

func (r *GormSMSTemplateRepository) GetByID(ctx context.Context, id uint) (*entity.SMSTemplate, error) {
	var tpl entity.SMSTemplate
	if err := r.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// GetActiveByType returns the newest active template of the given type,
// or nil when the type has none.
func (r *GormSMSTemplateRepository) GetActiveByType(ctx context.Context, t entity.TemplateType) (*entity.SMSTemplate, error) {
	var tpl entity.SMSTemplate
	err := r.db.WithContext(ctx).
		Where("type = ? AND active = ?", t, true).
		Order("created_at DESC").
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *GormSMSTemplateRepository) List(ctx context.Context, activeOnly bool) ([]*entity.SMSTemplate, error) {
	var tpls []*entity.SMSTemplate
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&tpls).Error; err != nil {
		return nil, err
	}
	return tpls, nil
}

func (r *GormSMSTemplateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.SMSTemplate{}, id).Error
}

// GormEmailTemplateRepository implements the EmailTemplateRepository interface
type GormEmailTemplateRepository struct {
	db *gorm.DB
}

// NewGormEmailTemplateRepository creates a new GORM email template repository
func NewGormEmailTemplateRepository(db *gorm.DB) repository.EmailTemplateRepository {
	return &GormEmailTemplateRepository{db: db}
}

func (r *GormEmailTemplateRepository) Create(ctx context.Context, tpl *entity.EmailTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *GormEmailTemplateRepository) Update(ctx context.Context, tpl *entity.EmailTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

func (r *GormEmailTemplateRepository) GetByID(ctx context.Context, id uint) (*entity.EmailTemplate, error) {
	var tpl entity.EmailTemplate
	if err := r.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *GormEmailTemplateRepository) GetActiveByType(ctx context.Context, t entity.TemplateType) (*entity.EmailTemplate, error) {
	var tpl entity.EmailTemplate
	err := r.db.WithContext(ctx).
		Where("type = ? AND active = ?", t, true).
		Order("created_at DESC").
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *GormEmailTemplateRepository) List(ctx context.Context, activeOnly bool) ([]*entity.EmailTemplate, error) {
	var tpls []*entity.EmailTemplate
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&tpls).Error; err != nil {
		return nil, err
	}
	return tpls, nil
}

func (r *GormEmailTemplateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.EmailTemplate{}, id).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// GormRuleRepository implements the RuleRepository interface
type GormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GORM rule repository
func NewGormRuleRepository(db *gorm.DB) repository.RuleRepository {
	return &GormRuleRepository{db: db}
}

func (r *GormRuleRepository) Create(ctx context.Context, rule *entity.ScheduleRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *GormRuleRepository) Update(ctx context.Context, rule *entity.ScheduleRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *GormRuleRepository) GetByID(ctx context.Context, id uint) (*entity.ScheduleRule, error) {
	var rule entity.ScheduleRule
	err := r.db.WithContext(ctx).
		Preload("SMSTemplate").
		Preload("EmailTemplate").
		First(&rule, id).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListActive returns the active-rule snapshot the planner works from.
func (r *GormRuleRepository) ListActive(ctx context.Context) ([]*entity.ScheduleRule, error) {
	var rules []*entity.ScheduleRule
	err := r.db.WithContext(ctx).
		Preload("SMSTemplate").
		Preload("EmailTemplate").
		Where("active = ?", true).
		Order("id").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *GormRuleRepository) List(ctx context.Context) ([]*entity.ScheduleRule, error) {
	var rules []*entity.ScheduleRule
	err := r.db.WithContext(ctx).
		Preload("SMSTemplate").
		Preload("EmailTemplate").
		Order("id").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *GormRuleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.ScheduleRule{}, id).Error
}

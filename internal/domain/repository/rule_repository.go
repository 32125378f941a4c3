package repository

import (
	"context"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// RuleRepository defines persistence for schedule rules.
type RuleRepository interface {
	Create(ctx context.Context, rule *entity.ScheduleRule) error
	Update(ctx context.Context, rule *entity.ScheduleRule) error
	GetByID(ctx context.Context, id uint) (*entity.ScheduleRule, error)
	// ListActive returns one consistent snapshot of all active rules
	// with their templates preloaded. The planner reads rules exactly
	// once per run through this method.
	ListActive(ctx context.Context) ([]*entity.ScheduleRule, error)
	List(ctx context.Context) ([]*entity.ScheduleRule, error)
	Delete(ctx context.Context, id uint) error
}

package repository

import (
	"context"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
)

// SMSTemplateRepository defines persistence for SMS templates.
type SMSTemplateRepository interface {
	Create(ctx context.Context, tpl *entity.SMSTemplate) error
	Update(ctx context.Context, tpl *entity.SMSTemplate) error
	GetByID(ctx context.Context, id uint) (*entity.SMSTemplate, error)
	// GetActiveByType returns the most recently created active template
	// of the given type, or nil when none exists.
	GetActiveByType(ctx context.Context, t entity.TemplateType) (*entity.SMSTemplate, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.SMSTemplate, error)
	Delete(ctx context.Context, id uint) error
}

// EmailTemplateRepository defines persistence for email templates.
type EmailTemplateRepository interface {
	Create(ctx context.Context, tpl *entity.EmailTemplate) error
	Update(ctx context.Context, tpl *entity.EmailTemplate) error
	GetByID(ctx context.Context, id uint) (*entity.EmailTemplate, error)
	GetActiveByType(ctx context.Context, t entity.TemplateType) (*entity.EmailTemplate, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.EmailTemplate, error)
	Delete(ctx context.Context, id uint) error
}

package entity

import (
	"time"

	"gorm.io/gorm"
)

// TemplateType partitions templates by intended recipient. Email
// templates additionally allow a general type.
type TemplateType string

const (
	TemplatePassenger TemplateType = "passenger"
	TemplateNextOfKin TemplateType = "next_of_kin"
	TemplateGeneral   TemplateType = "general"
)

// SMSTemplate is a plain-text message body with {placeholder} tokens.
type SMSTemplate struct {
	ID        uint
	Name      string
	Type      TemplateType
	Body      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// EmailTemplate carries a subject line and an HTML body, both with
// {placeholder} tokens.
type EmailTemplate struct {
	ID        uint
	Name      string
	Type      TemplateType
	Subject   string
	BodyHTML  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

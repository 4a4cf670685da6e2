package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectTemplate is a reusable project layout: a type, a default budget
// and a set of task templates cloned into every project created from it.
type ProjectTemplate struct {
	gorm.Model
	Name string      `gorm:"size:255;not null;uniqueIndex"`
	Type ProjectType `gorm:"type:varchar(20);not null"`

	DefaultBudget    decimal.Decimal `gorm:"type:numeric(18,4)"`
	BurdenScheduleID *uint

	TaskTemplates []TaskTemplate `gorm:"foreignKey:TemplateID"`
}

type TaskTemplate struct {
	gorm.Model
	TemplateID uint `gorm:"not null;index"`

	Number string `gorm:"size:50;not null"`
	Name   string `gorm:"size:255;not null"`

	Chargeable    bool
	Billable      bool
	Capitalizable bool
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectType string
type ProjectStatus string

const (
	ProjectCapital  ProjectType = "CAPITAL"
	ProjectContract ProjectType = "CONTRACT"
	ProjectIndirect ProjectType = "INDIRECT"

	ProjectDraft  ProjectStatus = "DRAFT"
	ProjectActive ProjectStatus = "ACTIVE"
	ProjectOnHold ProjectStatus = "ON_HOLD"
	ProjectClosed ProjectStatus = "CLOSED"
)

// ValidProjectStatus reports whether s is a known lifecycle status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectDraft, ProjectActive, ProjectOnHold, ProjectClosed:
		return true
	}
	return false
}

type Project struct {
	gorm.Model
	Number string      `gorm:"size:50;not null;uniqueIndex"`
	Name   string      `gorm:"size:255;not null"`
	Type   ProjectType `gorm:"type:varchar(20);not null"`

	Status          ProjectStatus   `gorm:"type:varchar(20);not null;default:DRAFT"`
	Budget          decimal.Decimal `gorm:"type:numeric(18,4)"`
	PercentComplete decimal.Decimal `gorm:"type:numeric(7,4)"`

	StartDate *time.Time
	EndDate   *time.Time

	// Default overhead policy; a task-level schedule takes precedence.
	BurdenScheduleID *uint

	Tasks []Task
}

type Task struct {
	gorm.Model
	ProjectID uint `gorm:"not null;index"`
	Project   Project

	Number string `gorm:"size:50;not null"`
	Name   string `gorm:"size:255;not null"`

	Chargeable    bool
	Billable      bool
	Capitalizable bool

	BurdenScheduleID *uint
}

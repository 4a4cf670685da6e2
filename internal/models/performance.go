package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PerformanceSnapshot is an append-only EVM measurement for a project.
// Snapshots are never updated or deleted.
type PerformanceSnapshot struct {
	gorm.Model
	ProjectID uint `gorm:"not null;index"`

	AsOf time.Time `gorm:"not null"`

	PlannedValue decimal.Decimal `gorm:"type:numeric(18,4)"`
	EarnedValue  decimal.Decimal `gorm:"type:numeric(18,4)"`
	ActualCost   decimal.Decimal `gorm:"type:numeric(18,4)"`

	CostVariance     decimal.Decimal `gorm:"type:numeric(18,4)"`
	ScheduleVariance decimal.Decimal `gorm:"type:numeric(18,4)"`

	CPI decimal.Decimal `gorm:"type:numeric(9,4)"`
	SPI decimal.Decimal `gorm:"type:numeric(9,4)"`

	EstimateAtCompletion decimal.Decimal `gorm:"type:numeric(18,4)"`
	EstimateToComplete   decimal.Decimal `gorm:"type:numeric(18,4)"`
}

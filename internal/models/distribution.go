package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DistributionLineType string
type DistributionStatus string

const (
	LineRaw      DistributionLineType = "RAW"
	LineBurdened DistributionLineType = "BURDENED"

	DistributionPosted DistributionStatus = "POSTED"
)

// CostDistribution is the balanced debit/credit pair posted for a costed
// expenditure item. Immutable once created; corrections are new rows.
type CostDistribution struct {
	gorm.Model
	ExpenditureItemID uint `gorm:"not null;index"`
	ExpenditureItem   ExpenditureItem

	DebitAccount  string `gorm:"size:60;not null"`
	CreditAccount string `gorm:"size:60;not null"`

	Amount   decimal.Decimal      `gorm:"type:numeric(18,4);not null"`
	LineType DistributionLineType `gorm:"type:varchar(20);not null"`
	Status   DistributionStatus   `gorm:"type:varchar(20);not null"`
}

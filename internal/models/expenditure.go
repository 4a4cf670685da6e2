package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenditureStatus string
type CapitalizationStatus string

const (
	ItemUncosted    ExpenditureStatus = "UNCOSTED"
	ItemCosted      ExpenditureStatus = "COSTED"
	ItemDistributed ExpenditureStatus = "DISTRIBUTED"

	CapNotApplicable CapitalizationStatus = "NOT_APPLICABLE"
	CapCIP           CapitalizationStatus = "CIP"
	CapCapitalized   CapitalizationStatus = "CAPITALIZED"
)

// Origin systems a cost record can be collected from.
const (
	SourcePayables     = "AP"
	SourceInventory    = "INV"
	SourceLabor        = "LABOR"
	SourceCrossProject = "CROSS_PROJECT"
)

type ExpenditureType struct {
	gorm.Model
	Name          string `gorm:"size:100;not null;uniqueIndex"`
	UnitOfMeasure string `gorm:"size:30"`
}

// ExpenditureItem is the canonical cost record. One row per origin
// transaction; the (source, reference) pair is the dedup key.
type ExpenditureItem struct {
	gorm.Model
	TaskID uint `gorm:"not null;index"`
	Task   Task

	ExpenditureTypeID uint `gorm:"not null"`
	ExpenditureType   ExpenditureType

	ItemDate time.Time

	Quantity     decimal.Decimal     `gorm:"type:numeric(18,4)"`
	UnitCost     decimal.Decimal     `gorm:"type:numeric(18,4)"`
	RawCost      decimal.Decimal     `gorm:"type:numeric(18,4)"`
	BurdenedCost decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	Currency     string              `gorm:"size:3;not null;default:USD"`

	TransactionSource    string `gorm:"size:30;not null;uniqueIndex:idx_item_origin"`
	TransactionReference string `gorm:"size:100;not null;uniqueIndex:idx_item_origin"`

	Status               ExpenditureStatus    `gorm:"type:varchar(20);not null;default:UNCOSTED"`
	CapitalizationStatus CapitalizationStatus `gorm:"type:varchar(20);not null;default:NOT_APPLICABLE"`
}

// EffectiveCost is the burdened cost when burdening has run, else the raw cost.
func (e ExpenditureItem) EffectiveCost() decimal.Decimal {
	if e.BurdenedCost.Valid {
		return e.BurdenedCost.Decimal
	}
	return e.RawCost
}

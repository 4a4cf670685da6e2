package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BurdenSchedule is a named overhead policy.
type BurdenSchedule struct {
	gorm.Model
	Name        string `gorm:"size:100;not null;uniqueIndex"`
	Description string `gorm:"type:text"`

	Rules []BurdenRule `gorm:"foreignKey:ScheduleID"`
}

// BurdenRule binds an expenditure type to a multiplier within a schedule.
// When several rules could apply, the highest precedence wins.
type BurdenRule struct {
	gorm.Model
	ScheduleID uint `gorm:"not null;index"`

	ExpenditureTypeID uint `gorm:"not null"`
	ExpenditureType   ExpenditureType

	Multiplier decimal.Decimal `gorm:"type:numeric(9,4);not null"`
	Precedence int             `gorm:"not null;default:0"`
}

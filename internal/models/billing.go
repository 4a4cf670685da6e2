package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Person struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"`
	JobTitle string `gorm:"size:100"`
}

type BillRateSchedule struct {
	gorm.Model
	Name string `gorm:"size:100;not null;uniqueIndex"`

	Rates []BillRate `gorm:"foreignKey:ScheduleID"`
}

// BillRate binds a rate to exactly one of: a person, a job title, or an
// expenditure type. Lookup falls back in that order.
type BillRate struct {
	gorm.Model
	ScheduleID uint `gorm:"not null;index"`

	PersonID          *uint
	JobTitle          *string `gorm:"size:100"`
	ExpenditureTypeID *uint

	Rate decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}

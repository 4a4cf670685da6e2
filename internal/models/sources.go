package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Origin-system records. These tables are written by the payables,
// inventory and time-capture systems; the collector only reads them
// (and flips Interfaced on payable lines).

type PayableLineStatus string
type TimeEntryStatus string
type InventoryTransactionType string

const (
	PayableEntered   PayableLineStatus = "ENTERED"
	PayableValidated PayableLineStatus = "VALIDATED"

	TimeEntered  TimeEntryStatus = "ENTERED"
	TimeApproved TimeEntryStatus = "APPROVED"

	InventoryIssue   InventoryTransactionType = "ISSUE"
	InventoryReceipt InventoryTransactionType = "RECEIPT"
)

type PayableLine struct {
	gorm.Model
	InvoiceNumber string `gorm:"size:50;not null"`
	LineNumber    int    `gorm:"not null"`

	ProjectID *uint
	TaskID    *uint

	ExpenditureTypeID uint `gorm:"not null"`

	Amount   decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Currency string          `gorm:"size:3;not null;default:USD"`

	Status     PayableLineStatus `gorm:"type:varchar(20);not null"`
	Interfaced bool              `gorm:"not null;default:false"`
}

type InventoryTransaction struct {
	gorm.Model
	ProjectID *uint
	TaskID    *uint

	ExpenditureTypeID uint `gorm:"not null"`

	Type     InventoryTransactionType `gorm:"type:varchar(20);not null"`
	Quantity decimal.Decimal          `gorm:"type:numeric(18,4);not null"`
	UnitCost decimal.Decimal          `gorm:"type:numeric(18,4);not null"`

	TransactionDate time.Time
}

type TimeEntry struct {
	gorm.Model
	PersonName string `gorm:"size:255"`

	ProjectID *uint
	TaskID    *uint

	ExpenditureTypeID uint `gorm:"not null"`

	Hours    decimal.Decimal `gorm:"type:numeric(9,2);not null"`
	CostRate decimal.Decimal `gorm:"type:numeric(18,4);not null"`

	WorkDate time.Time
	Status   TimeEntryStatus `gorm:"type:varchar(20);not null"`
}

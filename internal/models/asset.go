package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectAssetStatus string
type AssetLineStatus string

const (
	AssetDraft      ProjectAssetStatus = "DRAFT"
	AssetInterfaced ProjectAssetStatus = "INTERFACED"

	AssetLineNew        AssetLineStatus = "NEW"
	AssetLineInterfaced AssetLineStatus = "INTERFACED"
)

// ProjectAsset groups capital costs into a fixed-asset candidate.
type ProjectAsset struct {
	gorm.Model
	ProjectID uint `gorm:"not null;index"`
	Project   Project

	Name   string             `gorm:"size:255;not null"`
	Status ProjectAssetStatus `gorm:"type:varchar(20);not null;default:DRAFT"`

	// Populated when the asset is interfaced to the fixed-asset register.
	AssetNumber     string `gorm:"size:60"`
	ExternalAssetID string `gorm:"size:60"`

	Lines []AssetLine `gorm:"foreignKey:ProjectAssetID"`
}

// AssetLine ties exactly one expenditure item to a project asset.
type AssetLine struct {
	gorm.Model
	ProjectAssetID uint `gorm:"not null;index"`

	ExpenditureItemID uint `gorm:"not null;uniqueIndex"`
	ExpenditureItem   ExpenditureItem

	CapitalizedAmount decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Status            AssetLineStatus `gorm:"type:varchar(20);not null;default:NEW"`
}

package models

import "gorm.io/gorm"

// AuditLog records every state-changing engine operation for traceability.
type AuditLog struct {
	gorm.Model
	Entity   string `gorm:"size:100;not null"`
	EntityID uint   `gorm:"not null"`
	Action   string `gorm:"size:100;not null"`
	Details  string `gorm:"type:text"`
}

package database

import (
	"costledger/internal/models"

	"gorm.io/gorm"
)

// RecordAudit appends an audit-trail row. Audit failures never fail the
// operation that triggered them.
func RecordAudit(db *gorm.DB, entity string, entityID uint, action, details string) {
	record := models.AuditLog{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = db.Create(&record).Error
}

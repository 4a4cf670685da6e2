package database

import (
	"fmt"
	"log"

	"costledger/internal/models"

	"gorm.io/gorm"
)

// Seed creates the default expenditure types when missing.
func Seed(db *gorm.DB) error {
	types := []models.ExpenditureType{
		{Name: "Labor", UnitOfMeasure: "HOURS"},
		{Name: "Material", UnitOfMeasure: "EACH"},
		{Name: "Professional Services", UnitOfMeasure: "CURRENCY"},
		{Name: "Expense", UnitOfMeasure: "CURRENCY"},
	}

	for _, et := range types {
		var count int64
		if err := db.Model(&models.ExpenditureType{}).
			Where("name = ?", et.Name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("checking expenditure type %s: %w", et.Name, err)
		}
		if count > 0 {
			// already seeded
			continue
		}

		if err := db.Create(&et).Error; err != nil {
			return fmt.Errorf("creating expenditure type %s: %w", et.Name, err)
		}
		log.Printf("seeded expenditure type: %s", et.Name)
	}

	return nil
}

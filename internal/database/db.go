package database

import (
	"fmt"
	"log"
	"time"

	"costledger/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the database, retrying while it comes up, and runs
// migrations plus reference-data seeding.
func Open(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to db after %d attempts: %w", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for every engine entity.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Project{},
		&models.Task{},
		&models.ExpenditureType{},
		&models.ExpenditureItem{},
		&models.BurdenSchedule{},
		&models.BurdenRule{},
		&models.CostDistribution{},
		&models.ProjectAsset{},
		&models.AssetLine{},
		&models.PerformanceSnapshot{},
		&models.PayableLine{},
		&models.InventoryTransaction{},
		&models.TimeEntry{},
		&models.Person{},
		&models.BillRateSchedule{},
		&models.BillRate{},
		&models.ProjectTemplate{},
		&models.TaskTemplate{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

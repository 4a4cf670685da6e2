package distribution

import (
	"context"
	"errors"
	"fmt"

	"costledger/internal/database"
	"costledger/internal/models"

	"gorm.io/gorm"
)

// ErrNotCosted is returned when distribution is attempted on an item
// that has not been costed yet, or has already been distributed.
var ErrNotCosted = errors.New("expenditure item is not in COSTED status")

// AccountResolver derives the debit/credit code combinations for an
// expenditure item. Implemented by the accounting-derivation system.
type AccountResolver interface {
	DeriveAccounts(item models.ExpenditureItem) (debit, credit string, err error)
}

// Service posts balanced cost distributions for costed items.
type Service struct {
	db       *gorm.DB
	resolver AccountResolver
}

func New(db *gorm.DB, resolver AccountResolver) *Service {
	return &Service{db: db, resolver: resolver}
}

// Distribute creates one POSTED distribution for the item's effective
// cost and advances the item to DISTRIBUTED. Both writes commit together.
func (s *Service) Distribute(ctx context.Context, itemID uint) (*models.CostDistribution, error) {
	var item models.ExpenditureItem
	err := s.db.WithContext(ctx).
		Preload("Task.Project").
		Preload("ExpenditureType").
		First(&item, itemID).Error
	if err != nil {
		return nil, fmt.Errorf("loading expenditure item %d: %w", itemID, err)
	}

	if item.Status != models.ItemCosted {
		return nil, fmt.Errorf("expenditure item %d: %w", itemID, ErrNotCosted)
	}

	debit, credit, err := s.resolver.DeriveAccounts(item)
	if err != nil {
		return nil, fmt.Errorf("deriving accounts for item %d: %w", itemID, err)
	}

	lineType := models.LineRaw
	if item.BurdenedCost.Valid {
		lineType = models.LineBurdened
	}

	dist := models.CostDistribution{
		ExpenditureItemID: item.ID,
		DebitAccount:      debit,
		CreditAccount:     credit,
		Amount:            item.EffectiveCost(),
		LineType:          lineType,
		Status:            models.DistributionPosted,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dist).Error; err != nil {
			return fmt.Errorf("creating distribution for item %d: %w", itemID, err)
		}
		if err := tx.Model(&models.ExpenditureItem{}).
			Where("id = ?", item.ID).
			Update("status", models.ItemDistributed).Error; err != nil {
			return fmt.Errorf("advancing item %d to DISTRIBUTED: %w", itemID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	database.RecordAudit(s.db, "cost_distribution", dist.ID, "POSTED",
		fmt.Sprintf("item=%d debit=%s credit=%s amount=%s", item.ID, debit, credit, dist.Amount.StringFixed(4)))

	return &dist, nil
}

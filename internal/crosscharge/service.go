package crosscharge

import (
	"context"
	"fmt"
	"strconv"

	"costledger/internal/database"
	"costledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service transfers cost from one project/task to another, optionally
// with a markup. The transfer is a new uncosted expenditure item whose
// origin points back at the source item.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Transfer charges the source item's effective cost, marked up by the
// given fraction, to the receiving task. Markup zero means at cost.
func (s *Service) Transfer(ctx context.Context, sourceItemID, targetTaskID uint, markup decimal.Decimal) (*models.ExpenditureItem, error) {
	var source models.ExpenditureItem
	if err := s.db.WithContext(ctx).First(&source, sourceItemID).Error; err != nil {
		return nil, fmt.Errorf("loading source item %d: %w", sourceItemID, err)
	}

	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, targetTaskID).Error; err != nil {
		return nil, fmt.Errorf("loading receiving task %d: %w", targetTaskID, err)
	}

	transfer := source.EffectiveCost().
		Mul(decimal.NewFromInt(1).Add(markup)).
		Round(2)

	unitCost := transfer
	if source.Quantity.IsPositive() {
		unitCost = transfer.Div(source.Quantity).Round(4)
	}

	capStatus := models.CapNotApplicable
	if task.Capitalizable {
		capStatus = models.CapCIP
	}

	item := models.ExpenditureItem{
		TaskID:               task.ID,
		ExpenditureTypeID:    source.ExpenditureTypeID,
		ItemDate:             source.ItemDate,
		Quantity:             source.Quantity,
		UnitCost:             unitCost,
		RawCost:              transfer,
		Currency:             source.Currency,
		TransactionSource:    models.SourceCrossProject,
		TransactionReference: strconv.FormatUint(uint64(source.ID), 10),
		Status:               models.ItemUncosted,
		CapitalizationStatus: capStatus,
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("creating cross-charge item from %d: %w", sourceItemID, err)
	}

	database.RecordAudit(s.db, "expenditure_item", item.ID, "CROSS_CHARGED",
		fmt.Sprintf("source_item=%d task=%d markup=%s amount=%s",
			source.ID, task.ID, markup.String(), transfer.StringFixed(2)))

	return &item, nil
}

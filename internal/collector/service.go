package collector

import (
	"context"
	"fmt"
	"strconv"

	"costledger/internal/database"
	"costledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service pulls qualifying transactions out of the origin systems and
// materializes them as canonical expenditure items. Running it is
// idempotent: sources already collected are skipped.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RunResult reports how many items each origin contributed.
type RunResult struct {
	Payables  int `json:"payables"`
	Inventory int `json:"inventory"`
	Labor     int `json:"labor"`
}

// Run collects validated payable lines, inventory issues and approved
// time entries in that order.
func (s *Service) Run(ctx context.Context) (RunResult, error) {
	var res RunResult
	var err error

	if res.Payables, err = s.collectPayables(ctx); err != nil {
		return res, err
	}
	if res.Inventory, err = s.collectInventory(ctx); err != nil {
		return res, err
	}
	if res.Labor, err = s.collectLabor(ctx); err != nil {
		return res, err
	}

	return res, nil
}

func (s *Service) collectPayables(ctx context.Context) (int, error) {
	var lines []models.PayableLine
	err := s.db.WithContext(ctx).
		Where("status = ? AND interfaced = ?", models.PayableValidated, false).
		Where("project_id IS NOT NULL AND task_id IS NOT NULL").
		Find(&lines).Error
	if err != nil {
		return 0, fmt.Errorf("loading validated payable lines: %w", err)
	}

	created := 0
	for _, pl := range lines {
		ref := fmt.Sprintf("%s-%d", pl.InvoiceNumber, pl.LineNumber)

		dup, err := s.collected(ctx, models.SourcePayables, ref)
		if err != nil {
			return created, err
		}
		if dup {
			continue
		}

		item := models.ExpenditureItem{
			TaskID:               *pl.TaskID,
			ExpenditureTypeID:    pl.ExpenditureTypeID,
			ItemDate:             pl.CreatedAt,
			Quantity:             decimal.NewFromInt(1),
			UnitCost:             pl.Amount,
			RawCost:              pl.Amount,
			Currency:             pl.Currency,
			TransactionSource:    models.SourcePayables,
			TransactionReference: ref,
			Status:               models.ItemUncosted,
			CapitalizationStatus: models.CapNotApplicable,
		}

		// Item creation and marking the line consumed move together.
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("creating expenditure item for payable line %d: %w", pl.ID, err)
			}
			if err := tx.Model(&models.PayableLine{}).
				Where("id = ?", pl.ID).
				Update("interfaced", true).Error; err != nil {
				return fmt.Errorf("marking payable line %d interfaced: %w", pl.ID, err)
			}
			return nil
		})
		if err != nil {
			return created, err
		}

		database.RecordAudit(s.db, "expenditure_item", item.ID, "COLLECTED",
			fmt.Sprintf("source=%s reference=%s", models.SourcePayables, ref))
		created++
	}

	return created, nil
}

func (s *Service) collectInventory(ctx context.Context) (int, error) {
	var issues []models.InventoryTransaction
	err := s.db.WithContext(ctx).
		Where("type = ?", models.InventoryIssue).
		Where("project_id IS NOT NULL AND task_id IS NOT NULL").
		Find(&issues).Error
	if err != nil {
		return 0, fmt.Errorf("loading inventory issues: %w", err)
	}

	created := 0
	for _, it := range issues {
		ref := strconv.FormatUint(uint64(it.ID), 10)

		dup, err := s.collected(ctx, models.SourceInventory, ref)
		if err != nil {
			return created, err
		}
		if dup {
			continue
		}

		item := models.ExpenditureItem{
			TaskID:               *it.TaskID,
			ExpenditureTypeID:    it.ExpenditureTypeID,
			ItemDate:             it.TransactionDate,
			Quantity:             it.Quantity,
			UnitCost:             it.UnitCost,
			RawCost:              it.Quantity.Mul(it.UnitCost),
			TransactionSource:    models.SourceInventory,
			TransactionReference: ref,
			Status:               models.ItemUncosted,
			CapitalizationStatus: models.CapNotApplicable,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return created, fmt.Errorf("creating expenditure item for inventory issue %d: %w", it.ID, err)
		}

		database.RecordAudit(s.db, "expenditure_item", item.ID, "COLLECTED",
			fmt.Sprintf("source=%s reference=%s", models.SourceInventory, ref))
		created++
	}

	return created, nil
}

func (s *Service) collectLabor(ctx context.Context) (int, error) {
	var entries []models.TimeEntry
	err := s.db.WithContext(ctx).
		Where("status = ?", models.TimeApproved).
		Where("project_id IS NOT NULL AND task_id IS NOT NULL").
		Find(&entries).Error
	if err != nil {
		return 0, fmt.Errorf("loading approved time entries: %w", err)
	}

	created := 0
	for _, te := range entries {
		ref := strconv.FormatUint(uint64(te.ID), 10)

		dup, err := s.collected(ctx, models.SourceLabor, ref)
		if err != nil {
			return created, err
		}
		if dup {
			continue
		}

		item := models.ExpenditureItem{
			TaskID:               *te.TaskID,
			ExpenditureTypeID:    te.ExpenditureTypeID,
			ItemDate:             te.WorkDate,
			Quantity:             te.Hours,
			UnitCost:             te.CostRate,
			RawCost:              te.Hours.Mul(te.CostRate),
			TransactionSource:    models.SourceLabor,
			TransactionReference: ref,
			Status:               models.ItemUncosted,
			CapitalizationStatus: models.CapNotApplicable,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return created, fmt.Errorf("creating expenditure item for time entry %d: %w", te.ID, err)
		}

		database.RecordAudit(s.db, "expenditure_item", item.ID, "COLLECTED",
			fmt.Sprintf("source=%s reference=%s", models.SourceLabor, ref))
		created++
	}

	return created, nil
}

// collected reports whether an origin transaction already has an
// expenditure item. The unique index on (source, reference) backs this
// check against concurrent runs.
func (s *Service) collected(ctx context.Context, source, reference string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ExpenditureItem{}).
		Where("transaction_source = ? AND transaction_reference = ?", source, reference).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking for existing item %s/%s: %w", source, reference, err)
	}
	return count > 0, nil
}

package reporting

import (
	"context"
	"fmt"
	"strconv"

	"costledger/internal/models"

	"github.com/shopspring/decimal"
)

// PendingTransaction is one origin record awaiting collection.
type PendingTransaction struct {
	Source      string          `json:"source"`
	Reference   string          `json:"reference"`
	ProjectID   uint            `json:"projectId"`
	TaskID      uint            `json:"taskId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// PendingTransactions unions the origin systems' records that qualify
// for collection but have no expenditure item yet.
func (s *Service) PendingTransactions(ctx context.Context) ([]PendingTransaction, error) {
	pending := []PendingTransaction{}

	var payables []models.PayableLine
	err := s.db.WithContext(ctx).
		Where("status = ? AND interfaced = ?", models.PayableValidated, false).
		Where("project_id IS NOT NULL AND task_id IS NOT NULL").
		Find(&payables).Error
	if err != nil {
		return nil, fmt.Errorf("listing pending payable lines: %w", err)
	}
	for _, pl := range payables {
		pending = append(pending, PendingTransaction{
			Source:      models.SourcePayables,
			Reference:   fmt.Sprintf("%s-%d", pl.InvoiceNumber, pl.LineNumber),
			ProjectID:   *pl.ProjectID,
			TaskID:      *pl.TaskID,
			Description: fmt.Sprintf("invoice %s line %d", pl.InvoiceNumber, pl.LineNumber),
			Amount:      pl.Amount,
		})
	}

	collected := s.db.Model(&models.ExpenditureItem{}).
		Select("transaction_reference").
		Where("transaction_source = ?", models.SourceInventory)

	var issues []models.InventoryTransaction
	err = s.db.WithContext(ctx).
		Where("type = ?", models.InventoryIssue).
		Where("project_id IS NOT NULL AND task_id IS NOT NULL").
		Where("CAST(id AS TEXT) NOT IN (?)", collected).
		Find(&issues).Error
	if err != nil {
		return nil, fmt.Errorf("listing pending inventory issues: %w", err)
	}
	for _, it := range issues {
		pending = append(pending, PendingTransaction{
			Source:      models.SourceInventory,
			Reference:   strconv.FormatUint(uint64(it.ID), 10),
			ProjectID:   *it.ProjectID,
			TaskID:      *it.TaskID,
			Description: fmt.Sprintf("inventory issue %d", it.ID),
			Amount:      it.Quantity.Mul(it.UnitCost),
		})
	}

	collectedLabor := s.db.Model(&models.ExpenditureItem{}).
		Select("transaction_reference").
		Where("transaction_source = ?", models.SourceLabor)

	var entries []models.TimeEntry
	err = s.db.WithContext(ctx).
		Where("status = ?", models.TimeApproved).
		Where("project_id IS NOT NULL AND task_id IS NOT NULL").
		Where("CAST(id AS TEXT) NOT IN (?)", collectedLabor).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing pending time entries: %w", err)
	}
	for _, te := range entries {
		pending = append(pending, PendingTransaction{
			Source:      models.SourceLabor,
			Reference:   strconv.FormatUint(uint64(te.ID), 10),
			ProjectID:   *te.ProjectID,
			TaskID:      *te.TaskID,
			Description: fmt.Sprintf("%s hours for %s", te.Hours.String(), te.PersonName),
			Amount:      te.Hours.Mul(te.CostRate),
		})
	}

	return pending, nil
}

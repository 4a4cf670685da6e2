package burden

import (
	"context"
	"errors"
	"fmt"

	"costledger/internal/database"
	"costledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNotUncosted is returned when costing is attempted on an item whose
// status has already advanced past UNCOSTED.
var ErrNotUncosted = errors.New("expenditure item is not in UNCOSTED status")

// Service applies overhead to raw costs. The effective schedule is the
// task-level override when set, else the project default, else none.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CostItem burdens a single uncosted item and advances it to COSTED.
func (s *Service) CostItem(ctx context.Context, itemID uint) (*models.ExpenditureItem, error) {
	var item models.ExpenditureItem
	err := s.db.WithContext(ctx).
		Preload("Task.Project").
		First(&item, itemID).Error
	if err != nil {
		return nil, fmt.Errorf("loading expenditure item %d: %w", itemID, err)
	}

	if item.Status != models.ItemUncosted {
		return nil, fmt.Errorf("expenditure item %d: %w", itemID, ErrNotUncosted)
	}

	scheduleID := item.Task.BurdenScheduleID
	if scheduleID == nil {
		scheduleID = item.Task.Project.BurdenScheduleID
	}

	burdened := item.RawCost
	if scheduleID != nil {
		multiplier, err := s.resolveMultiplier(ctx, *scheduleID, item.ExpenditureTypeID)
		if err != nil {
			return nil, err
		}
		burdened = item.RawCost.
			Mul(decimal.NewFromInt(1).Add(multiplier)).
			Round(4)
	}

	item.BurdenedCost = decimal.NullDecimal{Decimal: burdened, Valid: true}
	item.Status = models.ItemCosted
	if item.Task.Capitalizable {
		item.CapitalizationStatus = models.CapCIP
	} else {
		item.CapitalizationStatus = models.CapNotApplicable
	}

	updates := map[string]any{
		"burdened_cost":         item.BurdenedCost,
		"status":                item.Status,
		"capitalization_status": item.CapitalizationStatus,
	}
	if err := s.db.WithContext(ctx).Model(&models.ExpenditureItem{}).
		Where("id = ?", item.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("saving costed item %d: %w", itemID, err)
	}

	database.RecordAudit(s.db, "expenditure_item", item.ID, "COSTED",
		fmt.Sprintf("burdened_cost=%s", burdened.StringFixed(4)))

	return &item, nil
}

// CostProject burdens every UNCOSTED item under the project's tasks and
// returns how many items were costed.
func (s *Service) CostProject(ctx context.Context, projectID uint) (int, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		return 0, fmt.Errorf("loading project %d: %w", projectID, err)
	}

	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.ExpenditureItem{}).
		Joins("JOIN tasks ON tasks.id = expenditure_items.task_id").
		Where("tasks.project_id = ? AND expenditure_items.status = ?", projectID, models.ItemUncosted).
		Pluck("expenditure_items.id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("loading uncosted items for project %d: %w", projectID, err)
	}

	for _, id := range ids {
		if _, err := s.CostItem(ctx, id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// resolveMultiplier picks the rule for (schedule, expenditure type) with
// the highest precedence. No matching rule means a multiplier of zero.
func (s *Service) resolveMultiplier(ctx context.Context, scheduleID, typeID uint) (decimal.Decimal, error) {
	var rule models.BurdenRule
	err := s.db.WithContext(ctx).
		Where("schedule_id = ? AND expenditure_type_id = ?", scheduleID, typeID).
		Order("precedence desc").
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("resolving burden rule for schedule %d: %w", scheduleID, err)
	}
	return rule.Multiplier, nil
}

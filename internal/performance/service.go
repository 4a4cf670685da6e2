package performance

import (
	"context"
	"fmt"
	"time"

	"costledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Projects without an end date are measured against a one-year window.
const defaultScheduleDays = 365

// Service computes earned-value metrics and persists point-in-time
// snapshots. Snapshots are append-only history.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Compute calculates the project's EVM metrics as of now and persists
// them as a new snapshot.
func (s *Service) Compute(ctx context.Context, projectID uint) (*models.PerformanceSnapshot, error) {
	snap, err := s.measure(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(snap).Error; err != nil {
		return nil, fmt.Errorf("persisting performance snapshot for project %d: %w", projectID, err)
	}
	return snap, nil
}

func (s *Service) measure(ctx context.Context, projectID uint) (*models.PerformanceSnapshot, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		return nil, fmt.Errorf("loading project %d: %w", projectID, err)
	}

	ac, err := s.actualCost(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	progress := timeProgress(project, now)

	pv := project.Budget.Mul(decimal.NewFromFloat(progress)).Round(4)
	ev := project.Budget.Mul(project.PercentComplete).
		Div(decimal.NewFromInt(100)).Round(4)

	cpi := decimal.NewFromInt(1)
	if ac.IsPositive() {
		cpi = ev.Div(ac).Round(4)
	}
	spi := decimal.NewFromInt(1)
	if pv.IsPositive() {
		spi = ev.Div(pv).Round(4)
	}

	eac := project.Budget
	if cpi.IsPositive() {
		eac = project.Budget.Div(cpi).Round(4)
	}

	return &models.PerformanceSnapshot{
		ProjectID:            project.ID,
		AsOf:                 now,
		PlannedValue:         pv,
		EarnedValue:          ev,
		ActualCost:           ac,
		CostVariance:         ev.Sub(ac),
		ScheduleVariance:     ev.Sub(pv),
		CPI:                  cpi,
		SPI:                  spi,
		EstimateAtCompletion: eac,
		EstimateToComplete:   eac.Sub(ac),
	}, nil
}

// actualCost sums burdened-or-raw cost over every item under the
// project's tasks.
func (s *Service) actualCost(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	var ac decimal.NullDecimal
	err := s.db.WithContext(ctx).Model(&models.ExpenditureItem{}).
		Joins("JOIN tasks ON tasks.id = expenditure_items.task_id").
		Where("tasks.project_id = ?", projectID).
		Select("SUM(COALESCE(burdened_cost, raw_cost))").
		Scan(&ac).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing actual cost for project %d: %w", projectID, err)
	}
	if !ac.Valid {
		return decimal.Zero, nil
	}
	return ac.Decimal, nil
}

// timeProgress is the elapsed fraction of the project schedule, clamped
// to [0, 1]. The start falls back to the record's creation time.
func timeProgress(project models.Project, now time.Time) float64 {
	start := project.CreatedAt
	if project.StartDate != nil {
		start = *project.StartDate
	}
	end := start.AddDate(0, 0, defaultScheduleDays)
	if project.EndDate != nil {
		end = *project.EndDate
	}
	if !end.After(start) {
		return 1
	}

	progress := now.Sub(start).Hours() / end.Sub(start).Hours()
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

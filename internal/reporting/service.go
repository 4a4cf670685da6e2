package reporting

import (
	"context"
	"fmt"

	"costledger/internal/models"

	"gorm.io/gorm"
)

// Service produces the read-side listings consumed by reporting and UI
// layers. Everything here is read-only.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// PageParams is a normalized page request.
type PageParams struct {
	Page     int
	PageSize int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (p PageParams) normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func (p PageParams) offset() int { return (p.Page - 1) * p.PageSize }

// Page wraps one page of rows with the total row count.
type Page[T any] struct {
	Rows     []T   `json:"rows"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// ItemFilter narrows the expenditure-item listing.
type ItemFilter struct {
	PageParams
	ProjectID uint
	TaskID    uint
	Status    models.ExpenditureStatus
}

// ListExpenditureItems returns items newest first with task, project and
// expenditure-type labels joined in.
func (s *Service) ListExpenditureItems(ctx context.Context, f ItemFilter) (*Page[models.ExpenditureItem], error) {
	p := f.normalize()

	q := s.db.WithContext(ctx).Model(&models.ExpenditureItem{}).
		Joins("JOIN tasks ON tasks.id = expenditure_items.task_id")
	if f.ProjectID > 0 {
		q = q.Where("tasks.project_id = ?", f.ProjectID)
	}
	if f.TaskID > 0 {
		q = q.Where("expenditure_items.task_id = ?", f.TaskID)
	}
	if f.Status != "" {
		q = q.Where("expenditure_items.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting expenditure items: %w", err)
	}

	var rows []models.ExpenditureItem
	err := q.Preload("Task.Project").
		Preload("ExpenditureType").
		Order("expenditure_items.created_at desc").
		Offset(p.offset()).Limit(p.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing expenditure items: %w", err)
	}

	return &Page[models.ExpenditureItem]{Rows: rows, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

// ListBurdenSchedules returns every schedule with its rules nested.
func (s *Service) ListBurdenSchedules(ctx context.Context) ([]models.BurdenSchedule, error) {
	var schedules []models.BurdenSchedule
	err := s.db.WithContext(ctx).
		Preload("Rules.ExpenditureType").
		Order("name asc").
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("listing burden schedules: %w", err)
	}
	return schedules, nil
}

// DistributionFilter narrows the subledger listing.
type DistributionFilter struct {
	PageParams
	ProjectID uint
}

// ListDistributions returns posted subledger rows newest first.
func (s *Service) ListDistributions(ctx context.Context, f DistributionFilter) (*Page[models.CostDistribution], error) {
	p := f.normalize()

	q := s.db.WithContext(ctx).Model(&models.CostDistribution{})
	if f.ProjectID > 0 {
		q = q.Joins("JOIN expenditure_items ON expenditure_items.id = cost_distributions.expenditure_item_id").
			Joins("JOIN tasks ON tasks.id = expenditure_items.task_id").
			Where("tasks.project_id = ?", f.ProjectID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting distributions: %w", err)
	}

	var rows []models.CostDistribution
	err := q.Preload("ExpenditureItem.Task.Project").
		Order("cost_distributions.created_at desc").
		Offset(p.offset()).Limit(p.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing distributions: %w", err)
	}

	return &Page[models.CostDistribution]{Rows: rows, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

// AssetFilter narrows the project-asset listing.
type AssetFilter struct {
	PageParams
	ProjectID uint
}

// ListProjectAssets returns assets with their lines nested.
func (s *Service) ListProjectAssets(ctx context.Context, f AssetFilter) (*Page[models.ProjectAsset], error) {
	p := f.normalize()

	q := s.db.WithContext(ctx).Model(&models.ProjectAsset{})
	if f.ProjectID > 0 {
		q = q.Where("project_id = ?", f.ProjectID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting project assets: %w", err)
	}

	var rows []models.ProjectAsset
	err := q.Preload("Lines").
		Preload("Project").
		Order("created_at desc").
		Offset(p.offset()).Limit(p.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing project assets: %w", err)
	}

	return &Page[models.ProjectAsset]{Rows: rows, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

// ListAuditLogs returns the audit trail newest first.
func (s *Service) ListAuditLogs(ctx context.Context, p PageParams) (*Page[models.AuditLog], error) {
	p = p.normalize()

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting audit logs: %w", err)
	}

	var rows []models.AuditLog
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Offset(p.offset()).Limit(p.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}

	return &Page[models.AuditLog]{Rows: rows, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

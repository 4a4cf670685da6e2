package workflow

import (
	"context"
	"errors"
	"fmt"

	"costledger/internal/database"
	"costledger/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrUnknownStatus is returned for a target status outside the
	// project lifecycle.
	ErrUnknownStatus = errors.New("unknown project status")

	// ErrNotClosable is returned when a project fails the
	// financial-completeness checks gating the CLOSED transition.
	ErrNotClosable = errors.New("project is not ready to close")
)

// Service guards project status transitions. Closing is the only hard
// gate: it requires every item costed and every asset line interfaced.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Transition moves the project to the target status. Transitioning to
// the current status is a no-op.
func (s *Service) Transition(ctx context.Context, projectID uint, target models.ProjectStatus) (*models.Project, error) {
	if !models.ValidProjectStatus(target) {
		return nil, fmt.Errorf("status %q: %w", target, ErrUnknownStatus)
	}

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		return nil, fmt.Errorf("loading project %d: %w", projectID, err)
	}

	if project.Status == target {
		return &project, nil
	}

	if target == models.ProjectClosed {
		if err := s.checkClosable(ctx, project); err != nil {
			return nil, err
		}
	}

	previous := project.Status
	project.Status = target
	if err := s.db.WithContext(ctx).Model(&project).
		Update("status", target).Error; err != nil {
		return nil, fmt.Errorf("updating status of project %d: %w", projectID, err)
	}

	database.RecordAudit(s.db, "project", project.ID, "STATUS_CHANGED",
		fmt.Sprintf("from=%s to=%s", previous, target))

	return &project, nil
}

func (s *Service) checkClosable(ctx context.Context, project models.Project) error {
	var uncosted int64
	err := s.db.WithContext(ctx).Model(&models.ExpenditureItem{}).
		Joins("JOIN tasks ON tasks.id = expenditure_items.task_id").
		Where("tasks.project_id = ? AND expenditure_items.status = ?", project.ID, models.ItemUncosted).
		Count(&uncosted).Error
	if err != nil {
		return fmt.Errorf("counting uncosted items for project %d: %w", project.ID, err)
	}
	if uncosted > 0 {
		return fmt.Errorf("project %s has %d uncosted expenditure item(s): %w",
			project.Number, uncosted, ErrNotClosable)
	}

	var pendingLines int64
	err = s.db.WithContext(ctx).Model(&models.AssetLine{}).
		Joins("JOIN project_assets ON project_assets.id = asset_lines.project_asset_id").
		Where("project_assets.project_id = ? AND asset_lines.status = ?", project.ID, models.AssetLineNew).
		Count(&pendingLines).Error
	if err != nil {
		return fmt.Errorf("counting pending asset lines for project %d: %w", project.ID, err)
	}
	if pendingLines > 0 {
		return fmt.Errorf("project %s has %d asset line(s) not interfaced to fixed assets: %w",
			project.Number, pendingLines, ErrNotClosable)
	}

	return nil
}

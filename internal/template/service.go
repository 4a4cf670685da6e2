package template

import (
	"context"
	"fmt"

	"costledger/internal/database"
	"costledger/internal/models"

	"gorm.io/gorm"
)

// Service creates projects from reusable templates.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateProject instantiates a template into a DRAFT project, cloning
// every task template. The project and its tasks commit together.
func (s *Service) CreateProject(ctx context.Context, templateID uint, number, name string) (*models.Project, error) {
	var tpl models.ProjectTemplate
	err := s.db.WithContext(ctx).
		Preload("TaskTemplates").
		First(&tpl, templateID).Error
	if err != nil {
		return nil, fmt.Errorf("loading project template %d: %w", templateID, err)
	}

	project := models.Project{
		Number:           number,
		Name:             name,
		Type:             tpl.Type,
		Status:           models.ProjectDraft,
		Budget:           tpl.DefaultBudget,
		BurdenScheduleID: tpl.BurdenScheduleID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return fmt.Errorf("creating project %s: %w", number, err)
		}
		for _, tt := range tpl.TaskTemplates {
			task := models.Task{
				ProjectID:     project.ID,
				Number:        tt.Number,
				Name:          tt.Name,
				Chargeable:    tt.Chargeable,
				Billable:      tt.Billable,
				Capitalizable: tt.Capitalizable,
			}
			if err := tx.Create(&task).Error; err != nil {
				return fmt.Errorf("creating task %s for project %s: %w", tt.Number, number, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	database.RecordAudit(s.db, "project", project.ID, "CREATED_FROM_TEMPLATE",
		fmt.Sprintf("template=%s tasks=%d", tpl.Name, len(tpl.TaskTemplates)))

	if err := s.db.WithContext(ctx).Preload("Tasks").First(&project, project.ID).Error; err != nil {
		return nil, fmt.Errorf("reloading project %d: %w", project.ID, err)
	}
	return &project, nil
}

package capitalization

import (
	"context"
	"errors"
	"fmt"

	"costledger/internal/database"
	"costledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNothingToInterface is returned when a project asset has no NEW
// lines left to send to the fixed-asset register.
var ErrNothingToInterface = errors.New("project asset has no NEW lines to interface")

// AssetRegister is the fixed-asset system boundary: it accepts a
// capitalized amount and hands back the register's identifiers.
type AssetRegister interface {
	CreateAsset(name string, amount decimal.Decimal) (externalID, assetNumber string, err error)
}

// Service groups capital costs into asset lines and interfaces completed
// project assets to the fixed-asset register.
type Service struct {
	db       *gorm.DB
	register AssetRegister
}

func New(db *gorm.DB, register AssetRegister) *Service {
	return &Service{db: db, register: register}
}

// GenerateAssetLines creates one NEW asset line per costed CIP item on
// the asset project's capitalizable tasks that is not yet linked to a
// line. Returns how many lines were created. Idempotent per item.
func (s *Service) GenerateAssetLines(ctx context.Context, assetID uint) (int, error) {
	var asset models.ProjectAsset
	if err := s.db.WithContext(ctx).First(&asset, assetID).Error; err != nil {
		return 0, fmt.Errorf("loading project asset %d: %w", assetID, err)
	}

	var taskIDs []uint
	err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id = ? AND capitalizable = ?", asset.ProjectID, true).
		Pluck("id", &taskIDs).Error
	if err != nil {
		return 0, fmt.Errorf("loading capitalizable tasks for project %d: %w", asset.ProjectID, err)
	}
	if len(taskIDs) == 0 {
		return 0, nil
	}

	linked := s.db.Model(&models.AssetLine{}).Select("expenditure_item_id")

	var items []models.ExpenditureItem
	err = s.db.WithContext(ctx).
		Where("task_id IN ?", taskIDs).
		Where("status = ? AND capitalization_status = ?", models.ItemCosted, models.CapCIP).
		Where("id NOT IN (?)", linked).
		Find(&items).Error
	if err != nil {
		return 0, fmt.Errorf("loading CIP items for asset %d: %w", assetID, err)
	}

	created := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			line := models.AssetLine{
				ProjectAssetID:    asset.ID,
				ExpenditureItemID: item.ID,
				CapitalizedAmount: item.EffectiveCost(),
				Status:            models.AssetLineNew,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("creating asset line for item %d: %w", item.ID, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if created > 0 {
		database.RecordAudit(s.db, "project_asset", asset.ID, "LINES_GENERATED",
			fmt.Sprintf("lines=%d", created))
	}

	return created, nil
}

// InterfaceToFA sends a project asset's NEW lines to the fixed-asset
// register: the asset becomes INTERFACED with the register's
// identifiers, every NEW line becomes INTERFACED and every referenced
// item becomes CAPITALIZED. All updates commit together.
func (s *Service) InterfaceToFA(ctx context.Context, assetID uint) (*models.ProjectAsset, error) {
	var asset models.ProjectAsset
	if err := s.db.WithContext(ctx).First(&asset, assetID).Error; err != nil {
		return nil, fmt.Errorf("loading project asset %d: %w", assetID, err)
	}

	var lines []models.AssetLine
	err := s.db.WithContext(ctx).
		Where("project_asset_id = ? AND status = ?", asset.ID, models.AssetLineNew).
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("loading NEW lines for asset %d: %w", assetID, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("project asset %d: %w", assetID, ErrNothingToInterface)
	}

	total := decimal.Zero
	lineIDs := make([]uint, 0, len(lines))
	itemIDs := make([]uint, 0, len(lines))
	for _, l := range lines {
		total = total.Add(l.CapitalizedAmount)
		lineIDs = append(lineIDs, l.ID)
		itemIDs = append(itemIDs, l.ExpenditureItemID)
	}

	externalID, assetNumber, err := s.register.CreateAsset(asset.Name, total)
	if err != nil {
		return nil, fmt.Errorf("creating fixed asset for project asset %d: %w", assetID, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":            models.AssetInterfaced,
			"external_asset_id": externalID,
			"asset_number":      assetNumber,
		}
		if err := tx.Model(&models.ProjectAsset{}).
			Where("id = ?", asset.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("interfacing project asset %d: %w", asset.ID, err)
		}
		if err := tx.Model(&models.AssetLine{}).
			Where("id IN ?", lineIDs).
			Update("status", models.AssetLineInterfaced).Error; err != nil {
			return fmt.Errorf("interfacing lines of asset %d: %w", asset.ID, err)
		}
		if err := tx.Model(&models.ExpenditureItem{}).
			Where("id IN ?", itemIDs).
			Update("capitalization_status", models.CapCapitalized).Error; err != nil {
			return fmt.Errorf("capitalizing items of asset %d: %w", asset.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	database.RecordAudit(s.db, "project_asset", asset.ID, "INTERFACED",
		fmt.Sprintf("asset_number=%s amount=%s lines=%d", assetNumber, total.StringFixed(4), len(lines)))

	if err := s.db.WithContext(ctx).Preload("Lines").First(&asset, asset.ID).Error; err != nil {
		return nil, fmt.Errorf("reloading project asset %d: %w", asset.ID, err)
	}
	return &asset, nil
}

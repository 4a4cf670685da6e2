package crosscharge

import (
	"context"
	"strconv"
	"testing"

	"costledger/internal/models"
	"costledger/internal/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	db         *gorm.DB
	sourceItem models.ExpenditureItem
	targetTask models.Task
}

func newFixture(t *testing.T, burdened string, targetCapitalizable bool) *fixture {
	db := testdb.Open(t)

	etype := models.ExpenditureType{Name: "Professional Services", UnitOfMeasure: "CURRENCY"}
	require.NoError(t, db.Create(&etype).Error)

	sourceProject := models.Project{Number: "P-5001", Name: "Shared Services", Type: models.ProjectIndirect, Status: models.ProjectActive}
	require.NoError(t, db.Create(&sourceProject).Error)
	sourceTask := models.Task{ProjectID: sourceProject.ID, Number: "1.0", Name: "Consulting"}
	require.NoError(t, db.Create(&sourceTask).Error)

	targetProject := models.Project{Number: "P-5002", Name: "Receiving Project", Type: models.ProjectCapital, Status: models.ProjectActive}
	require.NoError(t, db.Create(&targetProject).Error)
	targetTask := models.Task{ProjectID: targetProject.ID, Number: "1.0", Name: "Build", Capitalizable: targetCapitalizable}
	require.NoError(t, db.Create(&targetTask).Error)

	item := models.ExpenditureItem{
		TaskID:               sourceTask.ID,
		ExpenditureTypeID:    etype.ID,
		Quantity:             dec("1"),
		UnitCost:             dec("200.00"),
		RawCost:              dec("200.00"),
		TransactionSource:    models.SourcePayables,
		TransactionReference: "INV-CC",
		Status:               models.ItemCosted,
	}
	if burdened != "" {
		item.BurdenedCost = decimal.NullDecimal{Decimal: dec(burdened), Valid: true}
	}
	require.NoError(t, db.Create(&item).Error)

	return &fixture{db: db, sourceItem: item, targetTask: targetTask}
}

func TestTransfer_WithMarkup(t *testing.T) {
	f := newFixture(t, "250.00", false)
	svc := New(f.db)

	item, err := svc.Transfer(context.Background(), f.sourceItem.ID, f.targetTask.ID, dec("0.10"))
	require.NoError(t, err)

	assert.True(t, item.RawCost.Equal(dec("275.00")), "transfer cost is burdened cost x (1+markup)")
	assert.Equal(t, models.ItemUncosted, item.Status)
	assert.Equal(t, f.targetTask.ID, item.TaskID)
	assert.Equal(t, models.SourceCrossProject, item.TransactionSource)
	assert.Equal(t, strconv.FormatUint(uint64(f.sourceItem.ID), 10), item.TransactionReference,
		"origin must point back at the source item")
}

func TestTransfer_DefaultMarkupUsesRawCost(t *testing.T) {
	f := newFixture(t, "", false)
	svc := New(f.db)

	item, err := svc.Transfer(context.Background(), f.sourceItem.ID, f.targetTask.ID, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, item.RawCost.Equal(dec("200.00")))
}

func TestTransfer_RoundsToTwoDecimals(t *testing.T) {
	f := newFixture(t, "100.33", false)
	svc := New(f.db)

	item, err := svc.Transfer(context.Background(), f.sourceItem.ID, f.targetTask.ID, dec("0.155"))
	require.NoError(t, err)
	// 100.33 * 1.155 = 115.88115 -> 115.88
	assert.True(t, item.RawCost.Equal(dec("115.88")), "got %s", item.RawCost)
}

func TestTransfer_CapitalizableTargetGetsCIP(t *testing.T) {
	f := newFixture(t, "250.00", true)
	svc := New(f.db)

	item, err := svc.Transfer(context.Background(), f.sourceItem.ID, f.targetTask.ID, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, models.CapCIP, item.CapitalizationStatus)
}

func TestTransfer_MissingSourceOrTask(t *testing.T) {
	f := newFixture(t, "", false)
	svc := New(f.db)

	_, err := svc.Transfer(context.Background(), 9999, f.targetTask.ID, decimal.Zero)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = svc.Transfer(context.Background(), f.sourceItem.ID, 9999, decimal.Zero)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

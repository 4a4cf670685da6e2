package burden

import (
	"context"
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
	db      *gorm.DB
	project models.Project
	task    models.Task
	etype   models.ExpenditureType
}

func newFixture(t *testing.T) *fixture {
	db := testdb.Open(t)

	etype := models.ExpenditureType{Name: "Labor", UnitOfMeasure: "HOURS"}
	require.NoError(t, db.Create(&etype).Error)

	project := models.Project{
		Number: "P-1001",
		Name:   "Warehouse Expansion",
		Type:   models.ProjectCapital,
		Status: models.ProjectActive,
		Budget: dec("100000"),
	}
	require.NoError(t, db.Create(&project).Error)

	task := models.Task{ProjectID: project.ID, Number: "1.1", Name: "Construction", Chargeable: true}
	require.NoError(t, db.Create(&task).Error)

	return &fixture{db: db, project: project, task: task, etype: etype}
}

func (f *fixture) newItem(t *testing.T, rawCost string) models.ExpenditureItem {
	item := models.ExpenditureItem{
		TaskID:               f.task.ID,
		ExpenditureTypeID:    f.etype.ID,
		Quantity:             dec("1"),
		UnitCost:             dec(rawCost),
		RawCost:              dec(rawCost),
		TransactionSource:    models.SourcePayables,
		TransactionReference: "INV-" + rawCost,
		Status:               models.ItemUncosted,
		CapitalizationStatus: models.CapNotApplicable,
	}
	require.NoError(t, f.db.Create(&item).Error)
	return item
}

func (f *fixture) newSchedule(t *testing.T, name string, multiplier string, precedence int) models.BurdenSchedule {
	sched := models.BurdenSchedule{Name: name}
	require.NoError(t, f.db.Create(&sched).Error)
	rule := models.BurdenRule{
		ScheduleID:        sched.ID,
		ExpenditureTypeID: f.etype.ID,
		Multiplier:        dec(multiplier),
		Precedence:        precedence,
	}
	require.NoError(t, f.db.Create(&rule).Error)
	return sched
}

func TestCostItem_NoSchedule(t *testing.T) {
	f := newFixture(t)
	svc := New(f.db)
	item := f.newItem(t, "500.00")

	costed, err := svc.CostItem(context.Background(), item.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ItemCosted, costed.Status)
	require.True(t, costed.BurdenedCost.Valid)
	assert.True(t, costed.BurdenedCost.Decimal.Equal(dec("500.00")),
		"without a schedule, burdened cost equals raw cost")
}

func TestCostItem_ProjectDefaultSchedule(t *testing.T) {
	f := newFixture(t)
	sched := f.newSchedule(t, "Standard Overhead", "0.25", 0)
	require.NoError(t, f.db.Model(&f.project).Update("burden_schedule_id", sched.ID).Error)

	svc := New(f.db)
	item := f.newItem(t, "100.00")

	costed, err := svc.CostItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, costed.BurdenedCost.Decimal.Equal(dec("125.00")))
}

func TestCostItem_TaskOverrideWins(t *testing.T) {
	f := newFixture(t)
	projectSched := f.newSchedule(t, "Project Overhead", "0.25", 0)
	taskSched := f.newSchedule(t, "Task Overhead", "0.50", 0)
	require.NoError(t, f.db.Model(&f.project).Update("burden_schedule_id", projectSched.ID).Error)
	require.NoError(t, f.db.Model(&f.task).Update("burden_schedule_id", taskSched.ID).Error)

	svc := New(f.db)
	item := f.newItem(t, "100.00")

	costed, err := svc.CostItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, costed.BurdenedCost.Decimal.Equal(dec("150.00")),
		"task-level schedule must take precedence over the project default")
}

func TestCostItem_HighestPrecedenceRuleWins(t *testing.T) {
	f := newFixture(t)
	sched := f.newSchedule(t, "Tiered Overhead", "0.10", 1)
	rule := models.BurdenRule{
		ScheduleID:        sched.ID,
		ExpenditureTypeID: f.etype.ID,
		Multiplier:        dec("0.40"),
		Precedence:        5,
	}
	require.NoError(t, f.db.Create(&rule).Error)
	require.NoError(t, f.db.Model(&f.project).Update("burden_schedule_id", sched.ID).Error)

	svc := New(f.db)
	item := f.newItem(t, "100.00")

	costed, err := svc.CostItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, costed.BurdenedCost.Decimal.Equal(dec("140.00")))
}

func TestCostItem_NoMatchingRuleMeansZeroMultiplier(t *testing.T) {
	f := newFixture(t)
	sched := models.BurdenSchedule{Name: "Empty Schedule"}
	require.NoError(t, f.db.Create(&sched).Error)
	require.NoError(t, f.db.Model(&f.project).Update("burden_schedule_id", sched.ID).Error)

	svc := New(f.db)
	item := f.newItem(t, "321.55")

	costed, err := svc.CostItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemCosted, costed.Status)
	assert.True(t, costed.BurdenedCost.Decimal.Equal(dec("321.55")))
}

func TestCostItem_RoundsToFourDecimals(t *testing.T) {
	f := newFixture(t)
	sched := f.newSchedule(t, "Odd Overhead", "0.3333", 0)
	require.NoError(t, f.db.Model(&f.project).Update("burden_schedule_id", sched.ID).Error)

	svc := New(f.db)
	item := f.newItem(t, "10.01")

	costed, err := svc.CostItem(context.Background(), item.ID)
	require.NoError(t, err)
	// 10.01 * 1.3333 = 13.346333 -> 13.3463
	assert.True(t, costed.BurdenedCost.Decimal.Equal(dec("13.3463")),
		"got %s", costed.BurdenedCost.Decimal)
}

func TestCostItem_CapitalizableTaskGetsCIP(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&f.task).Update("capitalizable", true).Error)

	svc := New(f.db)
	item := f.newItem(t, "75.00")

	costed, err := svc.CostItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CapCIP, costed.CapitalizationStatus)
}

func TestCostItem_AlreadyCosted(t *testing.T) {
	f := newFixture(t)
	svc := New(f.db)
	item := f.newItem(t, "50.00")

	_, err := svc.CostItem(context.Background(), item.ID)
	require.NoError(t, err)

	_, err = svc.CostItem(context.Background(), item.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotUncosted)
}

func TestCostProject(t *testing.T) {
	f := newFixture(t)
	svc := New(f.db)
	f.newItem(t, "10.00")
	f.newItem(t, "20.00")

	n, err := svc.CostProject(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var remaining int64
	require.NoError(t, f.db.Model(&models.ExpenditureItem{}).
		Where("status = ?", models.ItemUncosted).
		Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestCostProject_MissingProject(t *testing.T) {
	f := newFixture(t)
	svc := New(f.db)

	_, err := svc.CostProject(context.Background(), 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"costledger/internal/billing"
	"costledger/internal/burden"
	"costledger/internal/capitalization"
	"costledger/internal/collector"
	"costledger/internal/crosscharge"
	"costledger/internal/distribution"
	"costledger/internal/models"
	"costledger/internal/performance"
	"costledger/internal/reporting"
	"costledger/internal/template"
	"costledger/internal/testdb"
	"costledger/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := testdb.Open(t)

	h := &Handler{
		Collector:      collector.New(db),
		Burden:         burden.New(db),
		Distribution:   distribution.New(db, distribution.StaticResolver{}),
		Capitalization: capitalization.New(db, capitalization.UUIDRegister{}),
		CrossCharge:    crosscharge.New(db),
		Performance:    performance.New(db),
		Workflow:       workflow.New(db),
		Billing:        billing.New(db),
		Template:       template.New(db),
		Reporting:      reporting.New(db),
	}

	r := gin.New()
	r.POST("/projects/:id/status", h.TransitionProject)
	r.GET("/bill-rates/lookup", h.LookupBillRate)
	r.GET("/expenditure-items", h.ListExpenditureItems)
	r.POST("/project-assets/:id/interface", h.InterfaceAsset)
	return r, db
}

func TestTransitionProject_PreconditionViolationIs409(t *testing.T) {
	r, db := newTestRouter(t)

	etype := models.ExpenditureType{Name: "Expense"}
	require.NoError(t, db.Create(&etype).Error)
	project := models.Project{Number: "P-1", Name: "Test", Type: models.ProjectContract, Status: models.ProjectActive}
	require.NoError(t, db.Create(&project).Error)
	task := models.Task{ProjectID: project.ID, Number: "1.0", Name: "Work"}
	require.NoError(t, db.Create(&task).Error)
	require.NoError(t, db.Create(&models.ExpenditureItem{
		TaskID:               task.ID,
		ExpenditureTypeID:    etype.ID,
		TransactionSource:    models.SourcePayables,
		TransactionReference: "INV-1",
		Status:               models.ItemUncosted,
		CapitalizationStatus: models.CapNotApplicable,
	}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects/1/status",
		strings.NewReader(`{"status":"CLOSED"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "1 uncosted expenditure item(s)")
}

func TestTransitionProject_MissingProjectIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects/42/status",
		strings.NewReader(`{"status":"CLOSED"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInterfaceAsset_NothingToInterfaceIs409(t *testing.T) {
	r, db := newTestRouter(t)

	project := models.Project{Number: "P-1", Name: "Test", Type: models.ProjectCapital, Status: models.ProjectActive}
	require.NoError(t, db.Create(&project).Error)
	asset := models.ProjectAsset{ProjectID: project.ID, Name: "Asset", Status: models.AssetDraft}
	require.NoError(t, db.Create(&asset).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/project-assets/1/interface", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLookupBillRate_DefaultsToZero(t *testing.T) {
	r, db := newTestRouter(t)

	schedule := models.BillRateSchedule{Name: "Standard Rates"}
	require.NoError(t, db.Create(&schedule).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bill-rates/lookup?schedule_id=1&job_title=Nobody", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rate":"0.00"}`, w.Body.String())
}

func TestLookupBillRate_RequiresSchedule(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bill-rates/lookup", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListExpenditureItems_Empty(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/expenditure-items", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

package server

import (
	"net/http"

	"costledger/internal/handlers"

	"github.com/gin-gonic/gin"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api/v1")

	// COLLECTION
	api.POST("/collector/run", h.RunCollector)
	api.GET("/pending-transactions", h.PendingTransactions)

	// EXPENDITURE ITEMS
	api.GET("/expenditure-items", h.ListExpenditureItems)
	api.POST("/expenditure-items/:id/cost", h.CostItem)
	api.POST("/expenditure-items/:id/distribute", h.DistributeItem)

	// BURDEN
	api.GET("/burden-schedules", h.ListBurdenSchedules)

	// SUBLEDGER
	api.GET("/distributions", h.ListDistributions)

	// CAPITALIZATION
	api.GET("/project-assets", h.ListProjectAssets)
	api.POST("/project-assets/:id/generate-lines", h.GenerateAssetLines)
	api.POST("/project-assets/:id/interface", h.InterfaceAsset)

	// CROSS-CHARGE
	api.POST("/cross-charges", h.CreateCrossCharge)

	// PROJECTS
	api.POST("/projects/from-template", h.CreateProjectFromTemplate)
	api.POST("/projects/:id/cost", h.CostProject)
	api.POST("/projects/:id/status", h.TransitionProject)
	api.POST("/projects/:id/performance", h.ComputePerformance)
	api.GET("/projects/:id/alerts", h.ProjectAlerts)

	// BILLING
	api.GET("/bill-rates/lookup", h.LookupBillRate)

	// AUDIT
	api.GET("/audit", h.ListAuditLogs)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

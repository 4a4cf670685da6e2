package handlers

import (
	"net/http"

	"costledger/internal/models"
	"costledger/internal/reporting"

	"github.com/gin-gonic/gin"
)

// RunCollector triggers a collection pass over every origin system.
func (h *Handler) RunCollector(c *gin.Context) {
	res, err := h.Collector.Run(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListExpenditureItems serves the paginated item listing.
func (h *Handler) ListExpenditureItems(c *gin.Context) {
	page, err := h.Reporting.ListExpenditureItems(c.Request.Context(), reporting.ItemFilter{
		PageParams: pageParams(c),
		ProjectID:  uintQuery(c, "project_id"),
		TaskID:     uintQuery(c, "task_id"),
		Status:     models.ExpenditureStatus(c.Query("status")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CostItem burdens a single expenditure item.
func (h *Handler) CostItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := h.Burden.CostItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CostProject burdens every uncosted item of a project.
func (h *Handler) CostProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	n, err := h.Burden.CostProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"costed": n})
}

// DistributeItem posts the cost distribution for a costed item.
func (h *Handler) DistributeItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dist, err := h.Distribution.Distribute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dist)
}

// ListDistributions serves the paginated subledger listing.
func (h *Handler) ListDistributions(c *gin.Context) {
	page, err := h.Reporting.ListDistributions(c.Request.Context(), reporting.DistributionFilter{
		PageParams: pageParams(c),
		ProjectID:  uintQuery(c, "project_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// PendingTransactions serves the union view of origin records awaiting
// collection.
func (h *Handler) PendingTransactions(c *gin.Context) {
	pending, err := h.Reporting.PendingTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

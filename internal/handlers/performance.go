package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ComputePerformance calculates the project's EVM metrics and records a
// snapshot.
func (h *Handler) ComputePerformance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	snap, err := h.Performance.Compute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// ProjectAlerts evaluates the project's alert thresholds.
func (h *Handler) ProjectAlerts(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	alerts, err := h.Performance.Alerts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

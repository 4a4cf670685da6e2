package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListBurdenSchedules serves every schedule with nested rules.
func (h *Handler) ListBurdenSchedules(c *gin.Context) {
	schedules, err := h.Reporting.ListBurdenSchedules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

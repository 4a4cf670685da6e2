package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs serves the engine's audit trail.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, err := h.Reporting.ListAuditLogs(c.Request.Context(), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

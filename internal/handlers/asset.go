package handlers

import (
	"net/http"

	"costledger/internal/reporting"

	"github.com/gin-gonic/gin"
)

// ListProjectAssets serves the paginated asset listing.
func (h *Handler) ListProjectAssets(c *gin.Context) {
	page, err := h.Reporting.ListProjectAssets(c.Request.Context(), reporting.AssetFilter{
		PageParams: pageParams(c),
		ProjectID:  uintQuery(c, "project_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GenerateAssetLines groups the asset project's CIP costs into lines.
func (h *Handler) GenerateAssetLines(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	n, err := h.Capitalization.GenerateAssetLines(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"linesCreated": n})
}

// InterfaceAsset sends the asset's NEW lines to the fixed-asset register.
func (h *Handler) InterfaceAsset(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	asset, err := h.Capitalization.InterfaceToFA(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

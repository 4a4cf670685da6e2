package handlers

import (
	"net/http"

	"costledger/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type transitionRequest struct {
	Status models.ProjectStatus `json:"status" binding:"required"`
}

// TransitionProject moves a project through its lifecycle; closing is
// gated on financial completeness.
func (h *Handler) TransitionProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.Workflow.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

type fromTemplateRequest struct {
	TemplateID uint   `json:"templateId" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// CreateProjectFromTemplate instantiates a project template.
func (h *Handler) CreateProjectFromTemplate(c *gin.Context) {
	var req fromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.Template.CreateProject(c.Request.Context(), req.TemplateID, req.Number, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

type crossChargeRequest struct {
	SourceItemID uint             `json:"sourceItemId" binding:"required"`
	TargetTaskID uint             `json:"targetTaskId" binding:"required"`
	Markup       *decimal.Decimal `json:"markup"`
}

// CreateCrossCharge transfers cost from one task to another.
func (h *Handler) CreateCrossCharge(c *gin.Context) {
	var req crossChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	markup := decimal.Zero
	if req.Markup != nil {
		markup = *req.Markup
	}

	item, err := h.CrossCharge.Transfer(c.Request.Context(), req.SourceItemID, req.TargetTaskID, markup)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

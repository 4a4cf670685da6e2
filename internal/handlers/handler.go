package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"costledger/internal/billing"
	"costledger/internal/burden"
	"costledger/internal/capitalization"
	"costledger/internal/collector"
	"costledger/internal/crosscharge"
	"costledger/internal/distribution"
	"costledger/internal/performance"
	"costledger/internal/reporting"
	"costledger/internal/template"
	"costledger/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler exposes the engine services over JSON. One instance is built
// at startup and shared by every route.
type Handler struct {
	Collector      *collector.Service
	Burden         *burden.Service
	Distribution   *distribution.Service
	Capitalization *capitalization.Service
	CrossCharge    *crosscharge.Service
	Performance    *performance.Service
	Workflow       *workflow.Service
	Billing        *billing.Service
	Template       *template.Service
	Reporting      *reporting.Service
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) reporting.PageParams {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return reporting.PageParams{Page: page, PageSize: size}
}

func uintQuery(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(v)
}

// respondError maps the engine's error classes onto HTTP statuses:
// not-found to 404, precondition violations to 409, the rest to 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrNotClosable),
		errors.Is(err, workflow.ErrUnknownStatus),
		errors.Is(err, capitalization.ErrNothingToInterface),
		errors.Is(err, burden.ErrNotUncosted),
		errors.Is(err, distribution.ErrNotCosted):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

package handlers

import (
	"net/http"

	"costledger/internal/billing"

	"github.com/gin-gonic/gin"
)

// LookupBillRate resolves a bill rate through the fallback hierarchy:
// person, then job title, then expenditure type, then "0.00".
func (h *Handler) LookupBillRate(c *gin.Context) {
	scheduleID := uintQuery(c, "schedule_id")
	if scheduleID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "schedule_id is required"})
		return
	}

	q := billing.RateQuery{
		ScheduleID: scheduleID,
		JobTitle:   c.Query("job_title"),
	}
	if id := uintQuery(c, "person_id"); id > 0 {
		q.PersonID = &id
	}
	if id := uintQuery(c, "expenditure_type_id"); id > 0 {
		q.ExpenditureTypeID = &id
	}

	rate, err := h.Billing.LookupRate(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate.StringFixed(2)})
}

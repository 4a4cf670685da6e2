package performance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "CRITICAL"
	SeverityWarning  AlertSeverity = "WARNING"
	SeverityRisk     AlertSeverity = "RISK"
)

type Alert struct {
	Severity AlertSeverity `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
}

var (
	cpiCritical   = decimal.NewFromFloat(0.85)
	cpiWarning    = decimal.NewFromFloat(0.95)
	spiCritical   = decimal.NewFromFloat(0.85)
	burnThreshold = decimal.NewFromFloat(0.90)
)

// Alerts evaluates the project's current metrics against the alert
// thresholds without persisting a snapshot.
func (s *Service) Alerts(ctx context.Context, projectID uint) ([]Alert, error) {
	snap, err := s.measure(ctx, projectID)
	if err != nil {
		return nil, err
	}

	alerts := []Alert{}

	switch {
	case snap.CPI.LessThan(cpiCritical):
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Code:     "COST_OVERRUN",
			Message:  fmt.Sprintf("CPI %s is below 0.85", snap.CPI.StringFixed(2)),
		})
	case snap.CPI.LessThan(cpiWarning):
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Code:     "COST_PRESSURE",
			Message:  fmt.Sprintf("CPI %s is below 0.95", snap.CPI.StringFixed(2)),
		})
	}

	if snap.SPI.LessThan(spiCritical) {
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Code:     "BEHIND_SCHEDULE",
			Message:  fmt.Sprintf("SPI %s is below 0.85", snap.SPI.StringFixed(2)),
		})
	}

	// High burn with earned value trailing plan signals budget risk.
	var project struct{ Budget decimal.Decimal }
	if err := s.db.WithContext(ctx).Table("projects").
		Select("budget").
		Where("id = ?", projectID).
		Scan(&project).Error; err != nil {
		return nil, fmt.Errorf("loading budget for project %d: %w", projectID, err)
	}
	if project.Budget.IsPositive() {
		burn := snap.ActualCost.Div(project.Budget)
		if burn.GreaterThan(burnThreshold) && snap.EarnedValue.LessThan(snap.PlannedValue) {
			alerts = append(alerts, Alert{
				Severity: SeverityRisk,
				Code:     "BUDGET_BURN",
				Message:  fmt.Sprintf("burn rate %s exceeds 0.90 while earned value trails plan", burn.StringFixed(2)),
			})
		}
	}

	return alerts, nil
}

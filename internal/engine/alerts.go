package engine

import (
	"fmt"

	"github.com/finpulse/finpulse/internal/models"
)

// Budget utilization alert thresholds, in percent of budget.
const (
	budgetCriticalPct = 90
	budgetWarningPct  = 75
	overspendAlertMin = 40
)

// ComputeAlerts derives the full alert list for a snapshot. Rules run in
// a fixed order and each appends at most one alert; several can coexist
// in a single evaluation. The engine never suppresses repeats — dedup
// across evaluations is the notifier's job.
func (e *Engine) ComputeAlerts(txs []models.Transaction, budget float64) []models.Alert {
	state := e.ComputeState(txs, budget)
	risks := e.ComputeRisk(state, budget)
	behavior := e.ComputeBehavior(txs)

	alerts := []models.Alert{}

	if budget > 0 {
		usedPct := state.MonthExpenses / budget * 100
		if usedPct >= budgetCriticalPct {
			alerts = append(alerts, models.Alert{
				Type:    models.AlertBudgetCritical,
				Title:   "Budget almost exhausted",
				Message: fmt.Sprintf("You have spent %.0f%% of this month's budget", usedPct),
			})
		} else if usedPct >= budgetWarningPct {
			alerts = append(alerts, models.Alert{
				Type:    models.AlertBudgetWarning,
				Title:   "Budget running low",
				Message: fmt.Sprintf("You have spent %.0f%% of this month's budget", usedPct),
			})
		}
	}

	if risks.OverspendRisk > overspendAlertMin {
		alerts = append(alerts, models.Alert{
			Type:    models.AlertVelocitySpike,
			Title:   "Spending ahead of pace",
			Message: fmt.Sprintf("Your spending pace is %d points ahead of the month's progress", risks.OverspendRisk),
		})
	}

	if behavior.LateNightSpike {
		alerts = append(alerts, models.Alert{
			Type:    models.AlertBehaviorAnomaly,
			Title:   "Late-night spending",
			Message: "Several late-night purchases were detected this week",
		})
	}

	if behavior.AbnormalVelocity {
		alerts = append(alerts, models.Alert{
			Type:    models.AlertVelocitySpike,
			Title:   "Unusually high spending today",
			Message: "Today's spending is more than double your recent daily average",
		})
	}

	return alerts
}

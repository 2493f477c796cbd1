package engine

import (
	"math"

	"github.com/finpulse/finpulse/internal/models"
)

// Composite weights: pace-based overspending dominates absolute deficit.
const (
	overspendWeight = 0.6
	deficitWeight   = 0.4
)

// ComputeRisk produces the bounded composite risk score from a derived
// financial state. Overspend risk is positive only when the share of
// budget already spent outpaces the share of the month already elapsed.
// Without a budget baseline risk is undefined and all signals are zero.
func (e *Engine) ComputeRisk(state models.FinancialState, budget float64) models.RiskSignals {
	if budget <= 0 {
		return models.RiskSignals{}
	}

	now := e.now()
	budgetUsedPct := state.MonthExpenses / budget * 100
	daysPassedPct := float64(now.Day()) / float64(daysInMonth(now)) * 100

	overspend := math.Max(0, budgetUsedPct-daysPassedPct)

	var deficit float64
	if state.ProjectedEndBalance < 0 {
		deficit = math.Min(100, -state.ProjectedEndBalance/budget*100)
	}

	score := math.Min(100, overspendWeight*overspend+deficitWeight*deficit)

	return models.RiskSignals{
		OverspendRisk: int(math.Round(overspend)),
		DeficitRisk:   int(math.Round(deficit)),
		RiskScore:     int(math.Round(score)),
	}
}

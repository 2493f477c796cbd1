package engine

import (
	"strings"

	"github.com/finpulse/finpulse/internal/models"
)

// warningShare is the fraction of the budget under which the projected
// end balance drops the safety level to "warning".
const warningShare = 0.15

// ComputeState derives point-in-time financial metrics from the ledger
// snapshot and the current budget. A budget <= 0 is treated as absent:
// balance and projection use a zero baseline and the safety level stays
// "stable" since risk is undefined without a budget.
func (e *Engine) ComputeState(txs []models.Transaction, budget float64) models.FinancialState {
	now := e.now()
	monthPrefix := now.Format("2006-01")
	dayOfMonth := now.Day()
	monthDays := daysInMonth(now)

	var expenses, income float64
	for _, tx := range txs {
		if !strings.HasPrefix(tx.Date, monthPrefix) {
			continue
		}
		switch tx.Type {
		case models.TypeExpense:
			expenses += tx.Amount
		case models.TypeIncome:
			income += tx.Amount
		}
	}

	if budget < 0 {
		budget = 0
	}

	burnRate := expenses / float64(dayOfMonth)
	projected := budget - burnRate*float64(monthDays)

	safety := models.SafetyStable
	if budget > 0 {
		if projected < 0 {
			safety = models.SafetyCritical
		} else if projected < warningShare*budget {
			safety = models.SafetyWarning
		}
	}

	return models.FinancialState{
		BalanceLeft:         budget - expenses,
		BurnRatePerDay:      burnRate,
		ProjectedEndBalance: projected,
		SafetyLevel:         safety,
		MonthExpenses:       expenses,
		MonthIncome:         income,
	}
}

package engine

import (
	"testing"
	"time"

	"github.com/finpulse/finpulse/internal/models"
)

func TestComputeRisk(t *testing.T) {
	t.Run("no budget means all zero signals", func(t *testing.T) {
		e := fixedEngine(midJune)
		state := models.FinancialState{MonthExpenses: 5000, ProjectedEndBalance: -2000}

		risks := e.ComputeRisk(state, 0)

		if risks != (models.RiskSignals{}) {
			t.Errorf("expected zero signals, got %+v", risks)
		}
	})

	t.Run("overspend when budget used outpaces days passed", func(t *testing.T) {
		// day 10 of a 30-day month: 80% used vs 33.3% elapsed
		e := fixedEngine(time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC))
		state := e.ComputeState([]models.Transaction{expense(8000, "2025-06-05")}, 10000)

		risks := e.ComputeRisk(state, 10000)

		if risks.OverspendRisk != 47 { // 80 - 33.33 = 46.67, rounded
			t.Errorf("expected overspend risk 47, got %d", risks.OverspendRisk)
		}
		if risks.DeficitRisk == 0 {
			t.Error("expected nonzero deficit risk for negative projection")
		}
	})

	t.Run("no overspend when spending lags the calendar", func(t *testing.T) {
		e := fixedEngine(midJune) // day 18 of 30: 60% elapsed
		state := e.ComputeState([]models.Transaction{expense(1000, "2025-06-05")}, 10000)

		risks := e.ComputeRisk(state, 10000)

		if risks.OverspendRisk != 0 {
			t.Errorf("expected overspend risk 0, got %d", risks.OverspendRisk)
		}
		if risks.DeficitRisk != 0 {
			t.Errorf("expected deficit risk 0, got %d", risks.DeficitRisk)
		}
		if risks.RiskScore != 0 {
			t.Errorf("expected risk score 0, got %d", risks.RiskScore)
		}
	})

	t.Run("signals stay within bounds under extreme spending", func(t *testing.T) {
		e := fixedEngine(time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC))
		state := e.ComputeState([]models.Transaction{expense(1e9, "2025-06-01")}, 100)

		risks := e.ComputeRisk(state, 100)

		for name, v := range map[string]int{
			"overspend": risks.OverspendRisk,
			"deficit":   risks.DeficitRisk,
			"score":     risks.RiskScore,
		} {
			if v < 0 {
				t.Errorf("%s risk below zero: %d", name, v)
			}
		}
		if risks.DeficitRisk > 100 {
			t.Errorf("deficit risk above 100: %d", risks.DeficitRisk)
		}
		if risks.RiskScore > 100 {
			t.Errorf("risk score above 100: %d", risks.RiskScore)
		}
	})

	t.Run("composite weights favor overspend", func(t *testing.T) {
		// day 15 of 30: 50% elapsed; 6000/10000 used: overspend 10;
		// projection 10000 - 400*30 = -2000: deficit 20; score 0.6*10+0.4*20 = 14
		e := fixedEngine(time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC))
		state := e.ComputeState([]models.Transaction{expense(6000, "2025-06-05")}, 10000)

		risks := e.ComputeRisk(state, 10000)

		if risks.OverspendRisk != 10 {
			t.Errorf("expected overspend 10, got %d", risks.OverspendRisk)
		}
		if risks.DeficitRisk != 20 {
			t.Errorf("expected deficit 20, got %d", risks.DeficitRisk)
		}
		if risks.RiskScore != 14 {
			t.Errorf("expected score 14, got %d", risks.RiskScore)
		}
	})
}

package engine

import (
	"testing"
	"time"

	"github.com/finpulse/finpulse/internal/models"
)

func at(date string, hour int) *time.Time {
	day, _ := time.Parse(dateLayout, date)
	ts := day.Add(time.Duration(hour) * time.Hour)
	return &ts
}

func catExpense(amount float64, category, date string) models.Transaction {
	return models.Transaction{Type: models.TypeExpense, Amount: amount, Category: category, Date: date}
}

func TestComputeBehavior(t *testing.T) {
	e := fixedEngine(midJune) // window 2025-06-12 .. 2025-06-18

	t.Run("category spike above weekly threshold", func(t *testing.T) {
		txs := []models.Transaction{
			catExpense(1000, "Food", "2025-06-12"),
			catExpense(1000, "Food", "2025-06-13"),
			catExpense(1000, "Food", "2025-06-14"),
			catExpense(1000, "Food", "2025-06-15"),
			catExpense(1000, "Food", "2025-06-16"),
			catExpense(1000, "Food", "2025-06-17"),
		}

		profile := e.ComputeBehavior(txs)

		if len(profile.CategorySpikes) != 1 || profile.CategorySpikes[0] != "Food" {
			t.Errorf("expected [Food], got %v", profile.CategorySpikes)
		}
		if profile.RecentFrequency != 6 {
			t.Errorf("expected frequency 6, got %d", profile.RecentFrequency)
		}
	})

	t.Run("category under threshold is not flagged", func(t *testing.T) {
		txs := []models.Transaction{
			catExpense(2000, "Food", "2025-06-13"),
			catExpense(2000, "Food", "2025-06-15"),
		}

		profile := e.ComputeBehavior(txs)

		if len(profile.CategorySpikes) != 0 {
			t.Errorf("expected no spikes, got %v", profile.CategorySpikes)
		}
	})

	t.Run("transactions outside the window are ignored", func(t *testing.T) {
		txs := []models.Transaction{
			catExpense(9000, "Food", "2025-06-11"), // one day before the window
			catExpense(9000, "Rent", "2025-07-01"),
		}

		profile := e.ComputeBehavior(txs)

		if profile.RecentFrequency != 0 {
			t.Errorf("expected frequency 0, got %d", profile.RecentFrequency)
		}
		if len(profile.CategorySpikes) != 0 {
			t.Errorf("expected no spikes, got %v", profile.CategorySpikes)
		}
	})

	t.Run("impulse pattern needs more than five mid-size purchases", func(t *testing.T) {
		var txs []models.Transaction
		for i := 0; i < 5; i++ {
			txs = append(txs, expense(500, "2025-06-14"))
		}

		if p := e.ComputeBehavior(txs); p.ImpulsePattern {
			t.Error("five purchases should not flag the impulse pattern")
		}

		txs = append(txs, expense(500, "2025-06-15"))
		if p := e.ComputeBehavior(txs); !p.ImpulsePattern {
			t.Error("six purchases should flag the impulse pattern")
		}
	})

	t.Run("impulse bounds are exclusive", func(t *testing.T) {
		var txs []models.Transaction
		for i := 0; i < 10; i++ {
			txs = append(txs, expense(100, "2025-06-14"), expense(1000, "2025-06-14"))
		}

		if p := e.ComputeBehavior(txs); p.ImpulsePattern {
			t.Error("amounts at the bounds should not count as impulse purchases")
		}
	})

	t.Run("abnormal velocity compares today to the weekly average", func(t *testing.T) {
		txs := []models.Transaction{
			expense(100, "2025-06-12"),
			expense(100, "2025-06-13"),
			expense(100, "2025-06-14"),
			expense(3000, "2025-06-18"), // today: avg is 3300/7 ~ 471
		}

		if p := e.ComputeBehavior(txs); !p.AbnormalVelocity {
			t.Error("expected abnormal velocity flag")
		}
	})

	t.Run("velocity floor prevents false positives on quiet weeks", func(t *testing.T) {
		txs := []models.Transaction{expense(900, "2025-06-18")}

		if p := e.ComputeBehavior(txs); p.AbnormalVelocity {
			t.Error("today's total under the floor must not flag velocity")
		}
	})

	t.Run("weekend spike requires weekend transactions", func(t *testing.T) {
		txs := []models.Transaction{
			expense(9000, "2025-06-16"), // Monday
			expense(9000, "2025-06-17"), // Tuesday
			expense(9000, "2025-06-18"), // Wednesday
		}

		if p := e.ComputeBehavior(txs); p.WeekendSpike {
			t.Error("weekday-only spending must never flag a weekend spike")
		}
	})

	t.Run("weekend spike on elevated weekend mean", func(t *testing.T) {
		txs := []models.Transaction{
			expense(100, "2025-06-16"),  // Monday
			expense(100, "2025-06-17"),  // Tuesday
			expense(5000, "2025-06-14"), // Saturday
			expense(5000, "2025-06-15"), // Sunday
		}

		if p := e.ComputeBehavior(txs); !p.WeekendSpike {
			t.Error("expected weekend spike flag")
		}
	})

	t.Run("late night needs at least two timestamped purchases", func(t *testing.T) {
		one := []models.Transaction{
			{Type: models.TypeExpense, Amount: 50, Date: "2025-06-14", Timestamp: at("2025-06-14", 23)},
		}
		if p := e.ComputeBehavior(one); p.LateNightSpike {
			t.Error("exactly one late-night purchase must not flag")
		}

		two := append(one, models.Transaction{
			Type: models.TypeExpense, Amount: 50, Date: "2025-06-15", Timestamp: at("2025-06-15", 2),
		})
		if p := e.ComputeBehavior(two); !p.LateNightSpike {
			t.Error("two late-night purchases should flag")
		}
	})

	t.Run("purchases without timestamps are skipped for late night", func(t *testing.T) {
		txs := []models.Transaction{
			expense(50, "2025-06-14"),
			expense(50, "2025-06-15"),
			expense(50, "2025-06-16"),
		}

		if p := e.ComputeBehavior(txs); p.LateNightSpike {
			t.Error("missing timestamps must degrade to not-flagged")
		}
	})

	t.Run("daytime timestamps do not count as late night", func(t *testing.T) {
		txs := []models.Transaction{
			{Type: models.TypeExpense, Amount: 50, Date: "2025-06-14", Timestamp: at("2025-06-14", 12)},
			{Type: models.TypeExpense, Amount: 50, Date: "2025-06-15", Timestamp: at("2025-06-15", 8)},
			{Type: models.TypeExpense, Amount: 50, Date: "2025-06-16", Timestamp: at("2025-06-16", 21)},
		}

		if p := e.ComputeBehavior(txs); p.LateNightSpike {
			t.Error("daytime purchases must not flag late night")
		}
	})

	t.Run("income never contributes to behavior flags", func(t *testing.T) {
		txs := []models.Transaction{
			income(50000, "2025-06-14"),
			income(50000, "2025-06-18"),
		}

		profile := e.ComputeBehavior(txs)

		if profile.RecentFrequency != 0 {
			t.Errorf("expected frequency 0, got %d", profile.RecentFrequency)
		}
		if profile.AbnormalVelocity || profile.WeekendSpike {
			t.Errorf("income flagged behavior: %+v", profile)
		}
	})
}

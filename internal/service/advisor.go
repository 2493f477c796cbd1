package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/finpulse/finpulse/internal/models"
)

// Advice kinds with their cache lifetimes
const (
	adviceSpending = "spending"
	adviceHabits   = "habits"

	adviceMinInterval = 30 * time.Second
	spendingAdviceTTL = 10 * time.Minute
	habitAdviceTTL    = time.Hour
)

type cachedAdvice struct {
	text        string
	generatedAt time.Time
}

// Advisor produces rule-based advisory text from derived analytics.
// Generation is throttled: repeat calls within 30 seconds return the
// cached text, and each advice kind keeps its result for its own TTL.
type Advisor struct {
	now func() time.Time

	mu    sync.Mutex
	cache map[string]cachedAdvice
}

// NewAdvisor creates an advisor with an empty cache
func NewAdvisor() *Advisor {
	return &Advisor{now: time.Now, cache: make(map[string]cachedAdvice)}
}

// NewAdvisorWithClock creates an advisor with a custom clock
func NewAdvisorWithClock(now func() time.Time) *Advisor {
	return &Advisor{now: now, cache: make(map[string]cachedAdvice)}
}

func (a *Advisor) cached(kind string, ttl time.Duration, build func() string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if entry, ok := a.cache[kind]; ok {
		age := now.Sub(entry.generatedAt)
		if age < adviceMinInterval || age < ttl {
			return entry.text
		}
	}

	text := build()
	a.cache[kind] = cachedAdvice{text: text, generatedAt: now}
	return text
}

// SpendingAdvice returns advisory text for the financial situation
func (a *Advisor) SpendingAdvice(state models.FinancialState, risks models.RiskSignals, behavior models.BehaviorProfile) string {
	return a.cached(adviceSpending, spendingAdviceTTL, func() string {
		var lines []string

		switch state.SafetyLevel {
		case models.SafetyCritical:
			lines = append(lines, fmt.Sprintf(
				"At your current burn rate of %.0f per day you are projected to end the month %.0f short. Cut back on non-essentials now.",
				state.BurnRatePerDay, -state.ProjectedEndBalance))
		case models.SafetyWarning:
			lines = append(lines, fmt.Sprintf(
				"Your projected end-of-month balance of %.0f is getting thin. Keep daily spending under %.0f to stay safe.",
				state.ProjectedEndBalance, state.BurnRatePerDay))
		}

		if risks.OverspendRisk > 40 {
			lines = append(lines, "You are spending faster than the month is passing. Slowing down for a few days will bring you back on pace.")
		}

		if len(behavior.CategorySpikes) > 0 {
			lines = append(lines, fmt.Sprintf(
				"Spending on %s spiked this week. Worth a look at whether those purchases were planned.",
				strings.Join(behavior.CategorySpikes, ", ")))
		}
		if behavior.ImpulsePattern {
			lines = append(lines, "A lot of small-to-medium purchases went through this week. Consider a 24-hour rule before discretionary buys.")
		}
		if behavior.LateNightSpike {
			lines = append(lines, "Several late-night purchases were detected. Late-night spending tends to be impulsive.")
		}

		if len(lines) == 0 {
			return fmt.Sprintf("Your finances look healthy: %.0f of the budget left and spending on pace. Keep it up.", state.BalanceLeft)
		}
		return strings.Join(lines, " ")
	})
}

// HabitAdvice returns advisory text for the habit statistics
func (a *Advisor) HabitAdvice(stats models.HabitStats) string {
	return a.cached(adviceHabits, habitAdviceTTL, func() string {
		if stats.TotalHabits == 0 {
			return "You are not tracking any habits yet. Start with one small daily habit."
		}

		var lines []string
		if stats.WeeklyCompletion >= 80 {
			lines = append(lines, fmt.Sprintf("Excellent week: %.0f%% of possible completions done.", stats.WeeklyCompletion))
		} else if stats.WeeklyCompletion < 30 {
			lines = append(lines, fmt.Sprintf("Only %.0f%% of possible completions this week. Pick your most important habit and focus on it.", stats.WeeklyCompletion))
		} else {
			lines = append(lines, fmt.Sprintf("You completed %.0f%% of possible habit check-ins this week.", stats.WeeklyCompletion))
		}

		if stats.LongestStreak >= 7 {
			lines = append(lines, fmt.Sprintf("Your longest streak is %d days — protect it.", stats.LongestStreak))
		}
		if stats.ActiveHabits < stats.TotalHabits {
			lines = append(lines, fmt.Sprintf("%d of %d habits have no active streak. Restart the easiest one today.",
				stats.TotalHabits-stats.ActiveHabits, stats.TotalHabits))
		}

		return strings.Join(lines, " ")
	})
}

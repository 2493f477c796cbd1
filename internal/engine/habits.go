package engine

import "github.com/finpulse/finpulse/internal/models"

// habitWindowDays is the trailing window for the weekly completion rate.
// The window is the 7 calendar days ending today, matching the behavior
// analyzer rather than a Sunday-aligned calendar week.
const habitWindowDays = 7

// ComputeHabitStats derives aggregate streak and completion statistics
// from the habit list and the completion log. Only completions of known
// habit ids count toward the weekly rate.
func (e *Engine) ComputeHabitStats(habits []models.Habit, log models.HabitLog) models.HabitStats {
	stats := models.HabitStats{TotalHabits: len(habits)}

	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
		if h.Streak > 0 {
			stats.ActiveHabits++
		}
		if h.Streak > stats.LongestStreak {
			stats.LongestStreak = h.Streak
		}
	}

	if len(habits) == 0 {
		return stats
	}

	now := e.now()
	completed := 0
	for offset := 0; offset < habitWindowDays; offset++ {
		date := now.AddDate(0, 0, -offset).Format(dateLayout)
		for _, id := range log[date] {
			if known[id] {
				completed++
			}
		}
	}

	possible := float64(len(habits) * habitWindowDays)
	stats.WeeklyCompletion = float64(completed) / possible * 100

	return stats
}

// UpdateStreak applies a completion on the given date to the habit:
// consecutive-day completions extend the streak, a gap resets it to 1,
// and a repeat on the same day is a no-op. Returns false for the no-op.
func UpdateStreak(h *models.Habit, date string) bool {
	if h.LastDone == date {
		return false
	}

	streak := 1
	if day, ok := parseDate(date); ok && h.LastDone == day.AddDate(0, 0, -1).Format(dateLayout) {
		streak = h.Streak + 1
	}

	h.Streak = streak
	h.LastDone = date
	return true
}

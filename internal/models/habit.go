package models

// Habit represents a tracked habit with its current streak
type Habit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Streak   int    `json:"streak"`
	LastDone string `json:"last_done,omitempty"` // Format: YYYY-MM-DD
}

// HabitLog maps a date (YYYY-MM-DD) to the ids of habits completed that day.
// Each date bucket is append-only.
type HabitLog map[string][]string

// HabitStats represents aggregate habit statistics
type HabitStats struct {
	TotalHabits      int     `json:"total_habits"`
	ActiveHabits     int     `json:"active_habits"`
	LongestStreak    int     `json:"longest_streak"`
	WeeklyCompletion float64 `json:"weekly_completion"` // percent of possible completions over the trailing 7 days
}

package engine

import (
	"time"

	"github.com/finpulse/finpulse/internal/models"
)

// Behavior analysis thresholds. Each sub-analysis is a simple threshold
// rule over the trailing 7-day window.
const (
	behaviorWindowDays = 7

	categorySpikeTotal = 5000 // per-category weekly expense sum

	impulseMinAmount = 100 // exclusive lower bound
	impulseMaxAmount = 1000
	impulseMaxCount  = 5 // flagged when count exceeds this

	velocityFactor = 2.0  // today vs weekly daily average
	velocityFloor  = 1000 // today's total must also exceed this

	weekendFactor = 1.5 // weekend mean vs weekday mean
	weekendFloor  = 2000

	lateNightStartHour = 22 // inclusive
	lateNightEndHour   = 5  // exclusive
	lateNightMinCount  = 2
)

// ComputeBehavior scans the trailing 7-day window (inclusive of today)
// for spending-pattern anomalies. Sub-analyses are independent; any one
// facing missing data (no timestamp, unparseable date) degrades to
// not-flagged rather than erroring.
func (e *Engine) ComputeBehavior(txs []models.Transaction) models.BehaviorProfile {
	now := e.now()
	today := now.Format(dateLayout)
	windowStart := now.AddDate(0, 0, -(behaviorWindowDays - 1)).Format(dateLayout)

	profile := models.BehaviorProfile{CategorySpikes: []string{}}

	byCategory := make(map[string]float64)
	var categoryOrder []string
	var impulseCount, lateNightCount int
	var windowTotal, todayTotal float64
	var weekendSum, weekdaySum float64
	var weekendCount, weekdayCount int

	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		if tx.Date < windowStart || tx.Date > today {
			continue
		}

		profile.RecentFrequency++
		windowTotal += tx.Amount

		if tx.Category != "" {
			if _, seen := byCategory[tx.Category]; !seen {
				categoryOrder = append(categoryOrder, tx.Category)
			}
			byCategory[tx.Category] += tx.Amount
		}

		if tx.Amount > impulseMinAmount && tx.Amount < impulseMaxAmount {
			impulseCount++
		}

		if tx.Date == today {
			todayTotal += tx.Amount
		}

		if day, ok := parseDate(tx.Date); ok {
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				weekendSum += tx.Amount
				weekendCount++
			} else {
				weekdaySum += tx.Amount
				weekdayCount++
			}
		}

		if tx.Timestamp != nil {
			hour := tx.Timestamp.Hour()
			if hour >= lateNightStartHour || hour < lateNightEndHour {
				lateNightCount++
			}
		}
	}

	for _, category := range categoryOrder {
		if byCategory[category] > categorySpikeTotal {
			profile.CategorySpikes = append(profile.CategorySpikes, category)
		}
	}

	profile.ImpulsePattern = impulseCount > impulseMaxCount

	dailyAverage := windowTotal / behaviorWindowDays
	profile.AbnormalVelocity = todayTotal > velocityFactor*dailyAverage && todayTotal > velocityFloor

	weekendMean := meanOf(weekendSum, weekendCount)
	weekdayMean := meanOf(weekdaySum, weekdayCount)
	profile.WeekendSpike = weekendMean > weekendFactor*weekdayMean && weekendMean > weekendFloor

	profile.LateNightSpike = lateNightCount >= lateNightMinCount

	return profile
}

// meanOf guards the empty-group mean with a denominator of 1
func meanOf(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

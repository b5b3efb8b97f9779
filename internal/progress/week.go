package progress

import (
	"math"
	"time"
)

// weekWindow is the size of the rolling aggregation window: the current
// ISO week plus the four before it.
const weekWindow = 5

const (
	oldestWeekIndex  = -4
	currentWeekIndex = 0
	hoursPerWeek     = 7 * 24
)

// WeekStart returns the Monday of the ISO week containing now, normalized
// to midnight UTC. It is the reference point for all week indices in a
// single aggregation run.
func WeekStart(now time.Time) time.Time {
	now = now.UTC()
	offset := int(time.Monday - now.Weekday())
	if offset > 0 {
		// Sunday: step back to the Monday that started this week.
		offset = -6
	}
	monday := now.AddDate(0, 0, offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekIndex places a timestamp in the rolling window relative to
// weekStart: 0 is the current week, -4 the oldest. Timestamps older than
// four weeks fold into the oldest bucket and timestamps at or after
// weekStart clamp to the current one; the window is an approximation, not
// a precise historical series. A zero weekStart returns 0 so that data
// degrades into the current bucket instead of being dropped.
func WeekIndex(ts, weekStart time.Time) int {
	if weekStart.IsZero() {
		return currentWeekIndex
	}
	idx := int(math.Floor(ts.Sub(weekStart).Hours() / hoursPerWeek))
	if idx < oldestWeekIndex {
		return oldestWeekIndex
	}
	if idx > currentWeekIndex {
		return currentWeekIndex
	}
	return idx
}

// historyPosition maps a week index to its slot in the oldest-to-newest
// history array: -4 lands at 0, 0 at 4.
func historyPosition(weekIndex int) int {
	return weekIndex - oldestWeekIndex
}

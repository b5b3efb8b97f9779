package progress

import (
	"time"
)

// decreasedThreshold marks a muscle group as decreased when its RoP falls
// below it. Fixed, not configurable.
const decreasedThreshold = -2.0

const sessionCounterDays = 30

// ropPct computes the week-over-week rate of progress percentage. A week
// starting from zero volume counts as a full 100% increase rather than an
// undefined division; two empty weeks are flat.
func ropPct(current, prev float64) float64 {
	switch {
	case prev > 0:
		return (current - prev) / prev * 100
	case current > 0:
		return 100
	default:
		return 0
	}
}

// ComputeStats aggregates a user's raw sessions into a statistics snapshot
// relative to now. Malformed sessions are isolated and skipped, never
// fatal: a session without any resolvable timestamp simply contributes to
// no stats.
//
// The weekly rollup intentionally uses the single-group normalization path
// and the ungated volume policy, unlike the live distribution path which
// splits completed volume across multiple groups. The divergence is part
// of the contract; see Normalize and TargetGroups.
func ComputeStats(userID int64, sessions []WorkoutSession, now time.Time) UserStatsSnapshot {
	nowUTC := now.UTC()
	weekStart := WeekStart(now)
	counterCutoff := nowUTC.AddDate(0, 0, -sessionCounterDays)

	histories := make(map[MuscleGroup]*[weekWindow]float64, len(MuscleGroups))
	for _, group := range MuscleGroups {
		histories[group] = &[weekWindow]float64{}
	}

	snapshot := UserStatsSnapshot{
		UserID:     userID,
		ComputedAt: nowUTC,
		PerMuscle:  make(map[MuscleGroup]MuscleStats, len(MuscleGroups)),
	}

	for _, session := range sessions {
		ts, ok := session.ResolveTimestamp()
		if !ok {
			continue
		}
		if !ts.Before(counterCutoff) && !ts.After(nowUTC) {
			snapshot.Totals.SessionsLast30Days++
		}

		pos := historyPosition(WeekIndex(ts, weekStart))
		for _, exercise := range session.Exercises {
			// A stored group outside the enumeration is treated the same as
			// an absent one and re-derived from the raw name.
			group := exercise.Group
			if _, ok := ParseMuscleGroup(string(group)); !ok || exercise.CanonicalName == "" {
				group = Normalize(exercise.RawName).Group
			}
			histories[group][pos] += LoggedVolume(exercise.Sets)
		}
	}

	for _, group := range MuscleGroups {
		history := *histories[group]
		current := history[weekWindow-1]
		prev := history[weekWindow-2]
		stats := MuscleStats{
			VolumeWeekCurrent: current,
			VolumeWeekPrev:    prev,
			VolumeHistory:     history,
			RoPPct:            ropPct(current, prev),
		}
		snapshot.PerMuscle[group] = stats
		snapshot.Totals.VolumeWeekCurrent += current
		snapshot.Totals.VolumeWeekPrev += prev
		if stats.RoPPct < decreasedThreshold {
			snapshot.Decreased = append(snapshot.Decreased, group)
		}
	}

	return snapshot
}

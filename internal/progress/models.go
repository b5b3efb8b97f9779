package progress

import (
	"time"
)

const dateFormat = time.DateOnly

// LoggedSet is one performed (or skipped) set within an exercise.
type LoggedSet struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
	Done     bool    `json:"done"`
}

// LoggedExercise is one exercise performed within a session.
//
// CanonicalName and Group are optional pre-computed values; when either is
// empty the aggregator derives both from RawName at aggregation time.
type LoggedExercise struct {
	RawName       string      `json:"raw_name"`
	CanonicalName string      `json:"canonical_name,omitempty"`
	Group         MuscleGroup `json:"muscle_group,omitempty"`
	Sets          []LoggedSet `json:"sets"`
}

// WorkoutSession is one training session as read from the store. Sessions
// are immutable for aggregation purposes: every recomputation re-reads them
// and no derived state is authoritative.
type WorkoutSession struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	PerformedAt *time.Time       `json:"performed_at,omitempty"`
	CreatedAtMs *int64           `json:"created_at_ms,omitempty"`
	WorkoutDate string           `json:"workout_date,omitempty"`
	Exercises   []LoggedExercise `json:"exercises"`
}

// ResolveTimestamp returns the authoritative instant used for week
// bucketing. Precedence: the structured PerformedAt timestamp, then the
// numeric creation time in milliseconds, then the parsed workout date
// string. Sessions where none resolve return false and are excluded from
// all time-bucketed aggregates.
func (s WorkoutSession) ResolveTimestamp() (time.Time, bool) {
	if s.PerformedAt != nil && !s.PerformedAt.IsZero() {
		return s.PerformedAt.UTC(), true
	}
	if s.CreatedAtMs != nil && *s.CreatedAtMs > 0 {
		return time.UnixMilli(*s.CreatedAtMs).UTC(), true
	}
	if s.WorkoutDate != "" {
		if date, err := time.Parse(dateFormat, s.WorkoutDate); err == nil {
			return date.UTC(), true
		}
	}
	return time.Time{}, false
}

// Totals aggregates volume across all muscle groups.
type Totals struct {
	VolumeWeekCurrent  float64 `json:"volume_week_current"`
	VolumeWeekPrev     float64 `json:"volume_week_prev"`
	SessionsLast30Days int     `json:"sessions_last_30_days"`
}

// MuscleStats is the per-group aggregation result. VolumeHistory runs
// oldest to newest: position 0 is week W-4, position 4 the current week.
type MuscleStats struct {
	VolumeWeekCurrent float64             `json:"volume_week_current"`
	VolumeWeekPrev    float64             `json:"volume_week_prev"`
	VolumeHistory     [weekWindow]float64 `json:"volume_history"`
	RoPPct            float64             `json:"rop_pct"`
}

// UserStatsSnapshot is the full aggregation output for one user. It is
// recomputed from scratch on each request and persisted with overwrite
// semantics as the user's latest snapshot.
type UserStatsSnapshot struct {
	UserID     int64                       `json:"user_id"`
	ComputedAt time.Time                   `json:"computed_at"`
	Totals     Totals                      `json:"totals"`
	PerMuscle  map[MuscleGroup]MuscleStats `json:"per_muscle"`
	Decreased  []MuscleGroup               `json:"decreased"`
}

// AdviceItem is one advisory run appended to a user's advice history.
type AdviceItem struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Lines     []string  `json:"lines"`
}

// ReportRow is one muscle group's line in the exported report table.
type ReportRow struct {
	MuscleGroup      MuscleGroup `json:"muscle_group"`
	VolumeCurrent    float64     `json:"volume_current"`
	VolumePrev       float64     `json:"volume_prev"`
	RoPPctFormatted  string      `json:"rop_pct_formatted"`
	Intent           string      `json:"intent"`
	HistoryFormatted string      `json:"history_formatted"`
}

// ReportTable is the data payload handed to the export consumer. Rendering
// it to a document is entirely the consumer's responsibility.
type ReportTable struct {
	Rows              []ReportRow `json:"rows"`
	StrengthChangePct int         `json:"strength_change_pct"`
	SessionsLast30d   int         `json:"sessions_last_30_days"`
	AdviceLines       []string    `json:"advice_lines"`
}

package progress

import (
	"fmt"
)

const maxAdviceLines = 5

const (
	overtrainingSurgePct = 30.0
	groupDropPct         = -10.0
	groupSurgePct        = 20.0
)

// GenerateAdvice derives short recommendation lines from a snapshot. The
// rules run in a fixed priority order and the result is truncated to the
// first five lines, so earlier rules crowd out later ones. Purely
// rule-based; there is no model behind it.
func GenerateAdvice(snapshot UserStatsSnapshot) []string {
	var lines []string

	// Overtraining caution comes first. Only evaluated against a non-empty
	// previous week to avoid flagging users who are just getting started.
	if snapshot.Totals.VolumeWeekPrev > 0 {
		surge := ropPct(snapshot.Totals.VolumeWeekCurrent, snapshot.Totals.VolumeWeekPrev)
		if surge > overtrainingSurgePct {
			lines = append(lines,
				"Total volume is up more than 30% versus last week. Large jumps raise injury risk: hold the load steady and prioritise recovery.")
		}
	}

	for _, group := range MuscleGroups {
		if snapshot.PerMuscle[group].RoPPct < groupDropPct {
			lines = append(lines, fmt.Sprintf(
				"%s volume dropped more than 10%% week over week. Add 1-2 effective sets to get back on track.", group))
		}
	}

	for _, group := range MuscleGroups {
		if snapshot.PerMuscle[group].RoPPct > groupSurgePct {
			lines = append(lines, fmt.Sprintf(
				"%s volume rose sharply. Keep the technique strict and leave 1-2 reps in reserve.", group))
		}
	}

	if len(lines) == 0 {
		lines = append(lines, "Training volume is stable. Keep progressing gradually, around 2.5-5% per week.")
	}

	if len(lines) > maxAdviceLines {
		lines = lines[:maxAdviceLines]
	}
	return lines
}

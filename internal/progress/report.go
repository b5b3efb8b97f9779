package progress

import (
	"fmt"
	"math"
	"strings"
)

// ropDeadbandPct is the flat zone of the report's intent classification.
// Strictly above +2 reads as improved, strictly below -2 as declined.
// UI copy and export coloring depend on this exact boundary.
const ropDeadbandPct = 2.0

const (
	intentImproved = "improved"
	intentDeclined = "declined"
	intentFlat     = "flat"
)

// FormatReport renders a snapshot plus advice lines into the tabular
// payload the export consumer receives. Rows follow the fixed muscle-group
// order.
func FormatReport(snapshot UserStatsSnapshot, adviceLines []string) ReportTable {
	table := ReportTable{
		Rows:              make([]ReportRow, 0, len(MuscleGroups)),
		StrengthChangePct: int(math.Round(ropPct(snapshot.Totals.VolumeWeekCurrent, snapshot.Totals.VolumeWeekPrev))),
		SessionsLast30d:   snapshot.Totals.SessionsLast30Days,
		AdviceLines:       adviceLines,
	}

	for _, group := range MuscleGroups {
		stats := snapshot.PerMuscle[group]
		table.Rows = append(table.Rows, ReportRow{
			MuscleGroup:      group,
			VolumeCurrent:    stats.VolumeWeekCurrent,
			VolumePrev:       stats.VolumeWeekPrev,
			RoPPctFormatted:  formatRoP(stats.RoPPct),
			Intent:           classifyIntent(stats.RoPPct),
			HistoryFormatted: formatHistory(stats.VolumeHistory),
		})
	}

	return table
}

// formatRoP renders the percentage with an explicit sign, e.g. "+12.5%"
// and "-3.0%". Zero renders as "+0.0%".
func formatRoP(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

func classifyIntent(pct float64) string {
	switch {
	case pct > ropDeadbandPct:
		return intentImproved
	case pct < -ropDeadbandPct:
		return intentDeclined
	default:
		return intentFlat
	}
}

// formatHistory renders the 5-week history oldest to newest.
func formatHistory(history [weekWindow]float64) string {
	parts := make([]string, 0, weekWindow)
	for _, v := range history {
		parts = append(parts, fmt.Sprintf("%.0f", v))
	}
	return strings.Join(parts, " / ")
}

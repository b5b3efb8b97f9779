package progress

// Two volume policies coexist on purpose. CompletedVolume is used wherever
// a session's total is persisted or reported (workout completion, weekly
// export totals). LoggedVolume is used inside the weekly muscle-group
// rollup, which counts every logged set regardless of its completion flag.
// Each call site picks one explicitly; do not unify them.

// CompletedVolume sums reps times weight over sets marked done. Sets with
// zero reps or zero weight contribute nothing even when done.
func CompletedVolume(sets []LoggedSet) float64 {
	var volume float64
	for _, set := range sets {
		if set.Done && set.Reps > 0 && set.WeightKg > 0 {
			volume += float64(set.Reps) * set.WeightKg
		}
	}
	return volume
}

// LoggedVolume sums reps times weight over all sets, completed or not. A
// set missing reps or weight contributes zero. Counting unfinished sets
// here looks like a bug but is the established historical-rollup policy;
// changing it would silently alter every user's historical aggregates.
func LoggedVolume(sets []LoggedSet) float64 {
	var volume float64
	for _, set := range sets {
		if set.Reps > 0 && set.WeightKg > 0 {
			volume += float64(set.Reps) * set.WeightKg
		}
	}
	return volume
}

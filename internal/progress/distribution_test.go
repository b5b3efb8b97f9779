package progress_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tkarvinen/liftpulse/internal/progress"
)

func TestTargetGroups(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []progress.MuscleGroup
	}{
		{
			name: "direct entry",
			raw:  "Bench Press",
			want: []progress.MuscleGroup{progress.Chest, progress.Triceps, progress.Shoulders},
		},
		{
			name: "alias routes through the canonical name",
			raw:  "press banca",
			want: []progress.MuscleGroup{progress.Chest, progress.Triceps, progress.Shoulders},
		},
		{
			name: "single group entry",
			raw:  "lateral raise",
			want: []progress.MuscleGroup{progress.Shoulders},
		},
		{
			name: "unknown exercise yields nil",
			raw:  "mystery movement",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progress.TargetGroups(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TargetGroups(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestDistributeSession(t *testing.T) {
	exercises := []progress.LoggedExercise{
		{
			RawName: "bench press",
			Sets: []progress.LoggedSet{
				{Reps: 3, WeightKg: 100, Done: true},
				// Completion-gated: undone sets do not distribute.
				{Reps: 10, WeightKg: 100, Done: false},
			},
		},
		{
			RawName: "mystery movement",
			Sets:    []progress.LoggedSet{{Reps: 10, WeightKg: 50, Done: true}},
		},
	}

	got := progress.DistributeSession(exercises)

	want := map[progress.MuscleGroup]float64{
		progress.Chest:     100,
		progress.Triceps:   100,
		progress.Shoulders: 100,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DistributeSession mismatch (-want +got):\n%s", diff)
	}
}

func TestDistributeVolume(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		got := progress.DistributeVolume(90, []progress.MuscleGroup{
			progress.Chest, progress.Triceps, progress.Shoulders,
		})
		want := map[progress.MuscleGroup]float64{
			progress.Chest:     30,
			progress.Triceps:   30,
			progress.Shoulders: 30,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("DistributeVolume mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty group list drops the volume", func(t *testing.T) {
		got := progress.DistributeVolume(100, nil)
		if len(got) != 0 {
			t.Errorf("DistributeVolume(100, nil) = %v, want empty map", got)
		}
	})

	t.Run("duplicate groups accumulate", func(t *testing.T) {
		got := progress.DistributeVolume(100, []progress.MuscleGroup{progress.Back, progress.Back})
		if got[progress.Back] != 100 {
			t.Errorf("duplicated group share = %v, want 100", got[progress.Back])
		}
	})
}

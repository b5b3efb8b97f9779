package progress_test

import (
	"testing"

	"github.com/tkarvinen/liftpulse/internal/progress"
)

func TestVolumePolicies(t *testing.T) {
	sets := []progress.LoggedSet{
		{Reps: 5, WeightKg: 100, Done: true},
		{Reps: 5, WeightKg: 100, Done: false},
		{Reps: 0, WeightKg: 100, Done: true},
		{Reps: 8, WeightKg: 0, Done: true},
		{Reps: -3, WeightKg: 50, Done: true},
	}

	if got := progress.CompletedVolume(sets); got != 500 {
		t.Errorf("CompletedVolume = %v, want 500", got)
	}
	if got := progress.LoggedVolume(sets); got != 1000 {
		t.Errorf("LoggedVolume = %v, want 1000", got)
	}
}

func TestVolumeNeverNegative(t *testing.T) {
	tests := []struct {
		name string
		sets []progress.LoggedSet
	}{
		{name: "nil sets", sets: nil},
		{name: "all zero", sets: []progress.LoggedSet{{}, {}}},
		{
			name: "negative reps ignored",
			sets: []progress.LoggedSet{{Reps: -5, WeightKg: 100, Done: true}},
		},
		{
			name: "negative weight ignored",
			sets: []progress.LoggedSet{{Reps: 5, WeightKg: -100, Done: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progress.CompletedVolume(tt.sets); got != 0 {
				t.Errorf("CompletedVolume = %v, want 0", got)
			}
			if got := progress.LoggedVolume(tt.sets); got != 0 {
				t.Errorf("LoggedVolume = %v, want 0", got)
			}
		})
	}
}

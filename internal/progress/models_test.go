package progress_test

import (
	"testing"
	"time"

	"github.com/tkarvinen/liftpulse/internal/progress"
	"github.com/tkarvinen/liftpulse/internal/ptr"
)

func TestResolveTimestamp(t *testing.T) {
	performed := time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC)
	createdMs := performed.AddDate(0, 0, 1).UnixMilli()

	tests := []struct {
		name    string
		session progress.WorkoutSession
		want    time.Time
		wantOK  bool
	}{
		{
			name: "performed at wins over everything",
			session: progress.WorkoutSession{
				PerformedAt: &performed,
				CreatedAtMs: ptr.Ref(createdMs),
				WorkoutDate: "2026-08-25",
			},
			want:   performed,
			wantOK: true,
		},
		{
			name: "created at ms beats the date string",
			session: progress.WorkoutSession{
				CreatedAtMs: ptr.Ref(createdMs),
				WorkoutDate: "2026-08-25",
			},
			want:   time.UnixMilli(createdMs).UTC(),
			wantOK: true,
		},
		{
			name:    "date string alone",
			session: progress.WorkoutSession{WorkoutDate: "2026-08-25"},
			want:    time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
			wantOK:  true,
		},
		{
			name: "zero performed at falls through",
			session: progress.WorkoutSession{
				PerformedAt: &time.Time{},
				WorkoutDate: "2026-08-25",
			},
			want:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:    "malformed date string does not resolve",
			session: progress.WorkoutSession{WorkoutDate: "25/08/2026"},
			wantOK:  false,
		},
		{
			name:    "no timestamp fields at all",
			session: progress.WorkoutSession{},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.session.ResolveTimestamp()
			if ok != tt.wantOK {
				t.Fatalf("ResolveTimestamp ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ResolveTimestamp = %v, want %v", got, tt.want)
			}
		})
	}
}

package progress_test

import (
	"testing"
	"time"

	"github.com/tkarvinen/liftpulse/internal/progress"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek",
			now:  time.Date(2026, 8, 19, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday stays on monday",
			now:  time.Date(2026, 8, 17, 0, 0, 1, 0, time.UTC),
			want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the preceding monday",
			now:  time.Date(2026, 8, 23, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-utc input is normalized",
			now:  time.Date(2026, 8, 19, 1, 0, 0, 0, time.FixedZone("EEST", 3*3600)),
			want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progress.WeekStart(tt.now); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestWeekIndex(t *testing.T) {
	weekStart := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want int
	}{
		{name: "during current week", ts: weekStart.AddDate(0, 0, 3), want: 0},
		{name: "just before week start", ts: weekStart.Add(-time.Hour), want: -1},
		{name: "four weeks back", ts: weekStart.AddDate(0, 0, -28), want: -4},
		{name: "ancient timestamp clamps to oldest", ts: weekStart.AddDate(-1, 0, 0), want: -4},
		{name: "future timestamp clamps to current", ts: weekStart.AddDate(0, 0, 14), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progress.WeekIndex(tt.ts, weekStart); got != tt.want {
				t.Errorf("WeekIndex(%v) = %d, want %d", tt.ts, got, tt.want)
			}
		})
	}

	t.Run("zero week start", func(t *testing.T) {
		ts := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		if got := progress.WeekIndex(ts, time.Time{}); got != 0 {
			t.Errorf("WeekIndex with zero weekStart = %d, want 0", got)
		}
	})
}

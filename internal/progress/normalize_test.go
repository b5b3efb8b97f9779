package progress_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tkarvinen/liftpulse/internal/progress"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want progress.Normalized
	}{
		{
			name: "canonical name resolves directly",
			raw:  "bench press",
			want: progress.Normalized{CanonicalName: "bench press", Group: progress.Chest},
		},
		{
			name: "spanish alias",
			raw:  "Press Banca",
			want: progress.Normalized{CanonicalName: "bench press", Group: progress.Chest},
		},
		{
			name: "alias with diacritics",
			raw:  "Curl de Bíceps",
			want: progress.Normalized{CanonicalName: "biceps curl", Group: progress.Biceps},
		},
		{
			name: "plural spanish alias",
			raw:  "sentadillas",
			want: progress.Normalized{CanonicalName: "squat", Group: progress.Quads},
		},
		{
			name: "punctuation and extra whitespace",
			raw:  "  BENCH   PRESS!! ",
			want: progress.Normalized{CanonicalName: "bench press", Group: progress.Chest},
		},
		{
			name: "keyword match keeps sanitized name",
			raw:  "incline dumbbell bench",
			want: progress.Normalized{CanonicalName: "incline dumbbell bench", Group: progress.Chest},
		},
		{
			name: "keyword groups evaluate in fixed order",
			raw:  "cable pullover thing",
			want: progress.Normalized{CanonicalName: "cable pullover thing", Group: progress.Back},
		},
		{
			name: "lat keyword matches at the end of the name",
			raw:  "cable lat",
			want: progress.Normalized{CanonicalName: "cable lat", Group: progress.Back},
		},
		{
			name: "lat keyword does not swallow lateral",
			raw:  "seated lateral cable raise",
			want: progress.Normalized{CanonicalName: "seated lateral cable raise", Group: progress.Shoulders},
		},
		{
			name: "unknown name falls back to default group",
			raw:  "mystery movement",
			want: progress.Normalized{CanonicalName: "mystery movement", Group: progress.Chest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progress.Normalize(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

// Feeding a canonical name back through the normalizer must be a no-op,
// otherwise re-normalizing stored records would drift.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Press Banca",
		"dominadas",
		"incline dumbbell bench",
		"mystery movement",
		"Elevación de Talones",
	}
	for _, raw := range inputs {
		first := progress.Normalize(raw)
		second := progress.Normalize(first.CanonicalName)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Normalize not idempotent for %q (-first +second):\n%s", raw, diff)
		}
	}
}

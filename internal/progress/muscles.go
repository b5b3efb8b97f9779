package progress

// MuscleGroup is one of the fixed body-region categories used to bucket
// training volume.
type MuscleGroup string

const (
	Chest      MuscleGroup = "Chest"
	Back       MuscleGroup = "Back"
	Shoulders  MuscleGroup = "Shoulders"
	Quads      MuscleGroup = "Quads"
	Hamstrings MuscleGroup = "Hamstrings"
	Biceps     MuscleGroup = "Biceps"
	Triceps    MuscleGroup = "Triceps"
	Calves     MuscleGroup = "Calves"
)

// DefaultMuscleGroup is assigned to exercises that match neither the alias
// table nor any keyword pattern. Changing it silently shifts all aggregate
// statistics for unrecognized exercises.
const DefaultMuscleGroup = Chest

// MuscleGroups lists all groups in their fixed evaluation order. Keyword
// matching, advice rules, and report rows all iterate in this order.
var MuscleGroups = []MuscleGroup{
	Chest,
	Back,
	Shoulders,
	Quads,
	Hamstrings,
	Biceps,
	Triceps,
	Calves,
}

// legacyMuscleGroups is the older 7-member enumeration without Calves that
// one legacy module used. It is kept only to document the inconsistency;
// nothing in the engine reads it. Pending product clarification on which
// enumeration the old data was recorded against.
//
//nolint:unused
var legacyMuscleGroups = []MuscleGroup{
	Chest,
	Back,
	Shoulders,
	Quads,
	Hamstrings,
	Biceps,
	Triceps,
}

// ParseMuscleGroup maps a stored string to a MuscleGroup. The second return
// value is false for strings outside the canonical 8-member enumeration.
func ParseMuscleGroup(s string) (MuscleGroup, bool) {
	for _, g := range MuscleGroups {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

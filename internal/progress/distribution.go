package progress

import (
	"fmt"

	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed targets.yaml
var targetsYAML []byte

//nolint:gochecknoglobals // the target table is immutable after load.
var multiGroupTargets = mustLoadTargets(targetsYAML)

func mustLoadTargets(raw []byte) map[string][]MuscleGroup {
	var file map[string][]MuscleGroup
	if err := yaml.Unmarshal(raw, &file); err != nil {
		panic(fmt.Sprintf("parse targets.yaml: %v", err))
	}
	for name, groups := range file {
		if len(groups) == 0 {
			panic(fmt.Sprintf("targets.yaml: %q has no muscle groups", name))
		}
		for _, g := range groups {
			if _, ok := ParseMuscleGroup(string(g)); !ok {
				panic(fmt.Sprintf("targets.yaml: unknown muscle group %q for %q", g, name))
			}
		}
	}
	return file
}

// TargetGroups returns every muscle group an exercise's volume is split
// across during live volume distribution. It shares the sanitization and
// alias steps with Normalize but consults its own hand-authored table,
// which is maintained independently from the single-group taxonomy.
// Unknown exercises return nil; their volume is dropped, not guessed.
func TargetGroups(rawName string) []MuscleGroup {
	name := sanitizeName(rawName)
	if groups, ok := multiGroupTargets[name]; ok {
		return groups
	}
	if canonical, ok := singleGroupTaxonomy.aliases[name]; ok {
		if groups, ok := multiGroupTargets[canonical]; ok {
			return groups
		}
	}
	return nil
}

// DistributeSession splits a session's completed volume across muscle
// groups using the multi-group target table. This is the live distribution
// shown right after a workout is logged; it deliberately differs from the
// weekly rollup in both its volume policy (completion-gated) and its
// attribution (multi-group, unknown exercises dropped).
func DistributeSession(exercises []LoggedExercise) map[MuscleGroup]float64 {
	distribution := make(map[MuscleGroup]float64)
	for _, exercise := range exercises {
		volume := CompletedVolume(exercise.Sets)
		for group, share := range DistributeVolume(volume, TargetGroups(exercise.RawName)) {
			distribution[group] += share
		}
	}
	return distribution
}

// DistributeVolume splits an exercise's volume evenly across the attributed
// groups. An empty group list drops the volume entirely, which is the
// deliberate policy for exercises missing from the target table.
func DistributeVolume(volume float64, groups []MuscleGroup) map[MuscleGroup]float64 {
	shares := make(map[MuscleGroup]float64, len(groups))
	if len(groups) == 0 {
		return shares
	}
	share := volume / float64(len(groups))
	for _, g := range groups {
		shares[g] += share
	}
	return shares
}

package progress

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Normalized is the single-group resolution of a free-text exercise name.
type Normalized struct {
	CanonicalName string
	Group         MuscleGroup
}

type taxonomyFile struct {
	Aliases   map[string]string      `yaml:"aliases"`
	Canonical map[string]MuscleGroup `yaml:"canonical"`
	Keywords  map[MuscleGroup]string `yaml:"keywords"`
}

type taxonomy struct {
	aliases   map[string]string
	canonical map[string]MuscleGroup
	keywords  map[MuscleGroup]*regexp.Regexp
}

//nolint:gochecknoglobals // the taxonomy is immutable after load.
var singleGroupTaxonomy = mustLoadTaxonomy(taxonomyYAML)

func mustLoadTaxonomy(raw []byte) taxonomy {
	var file taxonomyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		panic(fmt.Sprintf("parse taxonomy.yaml: %v", err))
	}

	t := taxonomy{
		aliases:   file.Aliases,
		canonical: make(map[string]MuscleGroup, len(file.Canonical)),
		keywords:  make(map[MuscleGroup]*regexp.Regexp, len(file.Keywords)),
	}
	for name, group := range file.Canonical {
		if _, ok := ParseMuscleGroup(string(group)); !ok {
			panic(fmt.Sprintf("taxonomy.yaml: unknown muscle group %q for %q", group, name))
		}
		t.canonical[name] = group
	}
	for group, pattern := range file.Keywords {
		if _, ok := ParseMuscleGroup(string(group)); !ok {
			panic(fmt.Sprintf("taxonomy.yaml: unknown keyword group %q", group))
		}
		t.keywords[group] = regexp.MustCompile(pattern)
	}
	return t
}

//nolint:gochecknoglobals // transformer reused across calls.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitizeName lowercases the name, strips diacritics and punctuation, and
// collapses runs of whitespace to a single space.
func sanitizeName(raw string) string {
	lowered := strings.ToLower(raw)
	stripped, _, err := transform.String(diacriticStripper, lowered)
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to
		// the lowered input for anything else.
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped.
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalize resolves a free-text exercise name to its canonical name and the
// single muscle group that receives the exercise's volume in the weekly
// rollup. It never fails: names that match neither the canonical table, the
// alias table, nor any keyword pattern fall back to DefaultMuscleGroup with
// the sanitized input as canonical name.
func Normalize(rawName string) Normalized {
	name := sanitizeName(rawName)

	if group, ok := singleGroupTaxonomy.canonical[name]; ok {
		return Normalized{CanonicalName: name, Group: group}
	}

	if canonical, ok := singleGroupTaxonomy.aliases[name]; ok {
		group, ok := singleGroupTaxonomy.canonical[canonical]
		if !ok {
			group = DefaultMuscleGroup
		}
		return Normalized{CanonicalName: canonical, Group: group}
	}

	// Keyword heuristics run in the fixed group order; the first group whose
	// pattern matches wins, so the order is part of the contract.
	for _, group := range MuscleGroups {
		re, ok := singleGroupTaxonomy.keywords[group]
		if !ok {
			continue
		}
		if re.MatchString(name) {
			return Normalized{CanonicalName: name, Group: group}
		}
	}

	return Normalized{CanonicalName: name, Group: DefaultMuscleGroup}
}

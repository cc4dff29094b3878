package match

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/geo"
)

// Ratio scores the similarity of a and b from 0 (nothing in common) to 100
// (identical), based on the rune-level Levenshtein distance relative to the
// longer string. Two empty strings score 100.
func Ratio(a, b string) int {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return constants.MaxScore
	}
	d := levenshtein.ComputeDistance(a, b)
	score := int(math.Round(float64(constants.MaxScore) * (1 - float64(d)/float64(longest))))
	return min(max(score, constants.MinScore), constants.MaxScore)
}

// Candidate is a fuzzy suggestion. It is never accepted automatically.
type Candidate struct {
	Entity geo.ReferenceEntity
	Score  int
}

// FuzzyMatcher finds the closest reference name for a label.
type FuzzyMatcher struct {
	entities []geo.ReferenceEntity
}

// NewFuzzyMatcher creates a matcher over entities in load order.
func NewFuzzyMatcher(entities []geo.ReferenceEntity) *FuzzyMatcher {
	return &FuzzyMatcher{entities: append([]geo.ReferenceEntity(nil), entities...)}
}

// Best scores the raw label against every raw reference name and returns the
// first entity reaching the highest score. It reports false only when the
// reference set is empty.
func (m *FuzzyMatcher) Best(label string) (Candidate, bool) {
	if len(m.entities) == 0 {
		return Candidate{}, false
	}

	best := Candidate{Entity: m.entities[0], Score: Ratio(label, m.entities[0].Name)}
	for _, e := range m.entities[1:] {
		if score := Ratio(label, e.Name); score > best.Score {
			best = Candidate{Entity: e, Score: score}
		}
	}
	return best, true
}

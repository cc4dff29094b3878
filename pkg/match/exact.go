package match

import (
	"github.com/agentstation/georecon/pkg/geo"
)

// KeyFunc extracts the field an ExactMatcher indexes.
type KeyFunc func(geo.ReferenceEntity) string

// ByName indexes entities by their canonical name.
func ByName(e geo.ReferenceEntity) string { return e.Name }

// ByAlpha2 indexes entities by their ISO 3166-1 alpha-2 code.
func ByAlpha2(e geo.ReferenceEntity) string { return e.ISOAlpha2 }

// Duplicate records a reference entity shadowed by an earlier one with the
// same normalized key.
type Duplicate struct {
	Key     string
	Kept    geo.ReferenceEntity
	Ignored geo.ReferenceEntity
}

// ExactMatcher looks up labels by normalized key.
type ExactMatcher struct {
	normalizer Normalizer
	entities   []geo.ReferenceEntity
	index      map[string]int
	duplicates []Duplicate
}

// NewExactMatcher indexes entities in load order. On a key collision the
// first entity is kept. Entities whose key is blank or geo.NotApplicable are
// not indexed.
func NewExactMatcher(entities []geo.ReferenceEntity, key KeyFunc, normalizer Normalizer) *ExactMatcher {
	m := &ExactMatcher{
		normalizer: normalizer,
		entities:   append([]geo.ReferenceEntity(nil), entities...),
		index:      make(map[string]int, len(entities)),
	}

	for i, e := range m.entities {
		raw := key(e)
		if !geo.IsPresent(raw) {
			continue
		}
		k := normalizer.Normalize(raw)
		if k == "" {
			continue
		}
		if first, ok := m.index[k]; ok {
			m.duplicates = append(m.duplicates, Duplicate{Key: k, Kept: m.entities[first], Ignored: e})
			continue
		}
		m.index[k] = i
	}
	return m
}

// Match returns the entity whose normalized key equals the normalized label.
func (m *ExactMatcher) Match(label string) (*geo.ReferenceEntity, bool) {
	k := m.normalizer.Normalize(label)
	if k == "" {
		return nil, false
	}
	i, ok := m.index[k]
	if !ok {
		return nil, false
	}
	e := m.entities[i]
	return &e, true
}

// Duplicates returns the shadowed entities in load order.
func (m *ExactMatcher) Duplicates() []Duplicate {
	return append([]Duplicate(nil), m.duplicates...)
}

// Len returns the number of indexed keys.
func (m *ExactMatcher) Len() int {
	return len(m.index)
}

package reconcile

import (
	"fmt"

	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/match"
)

// Attempt is what a resolver produced for a record.
type Attempt struct {
	Kind   MatchKind
	Entity *geo.ReferenceEntity
	Value  string
	Score  int
	// Missing names the field the matched entity lacks, when the match
	// succeeded but produced no value.
	Missing string
}

// Resolver is one step of a resolver chain. Attempt reports false to pass
// the record to the next resolver.
type Resolver interface {
	Name() string
	Attempt(rec Record) (Attempt, bool)
}

// exactResolver looks records up in a normalized-key index.
type exactResolver struct {
	name    string
	matcher *match.ExactMatcher
	value   func(geo.ReferenceEntity) (string, string)
	// passOnEmpty lets the chain continue when the entity carries no value.
	passOnEmpty bool
}

func (r *exactResolver) Name() string { return r.name }

func (r *exactResolver) Attempt(rec Record) (Attempt, bool) {
	e, ok := r.matcher.Match(rec.Key)
	if !ok {
		return Attempt{}, false
	}
	value, missing := r.value(*e)
	if value == "" && r.passOnEmpty {
		return Attempt{}, false
	}
	return Attempt{Kind: Exact, Entity: e, Value: value, Missing: missing}, true
}

// overlayResolver consults one section of the exception overlay.
type overlayResolver struct {
	name   string
	lookup func(string) (string, bool)
	field  func(Record) string
}

func (r *overlayResolver) Name() string { return r.name }

func (r *overlayResolver) Attempt(rec Record) (Attempt, bool) {
	v, ok := r.lookup(r.field(rec))
	if !ok || v == "" {
		return Attempt{}, false
	}
	return Attempt{Kind: Overridden, Value: v}, true
}

// fuzzyResolver proposes the closest reference name. It never sets a value.
type fuzzyResolver struct {
	matcher *match.FuzzyMatcher
}

func (r *fuzzyResolver) Name() string { return "fuzzy" }

func (r *fuzzyResolver) Attempt(rec Record) (Attempt, bool) {
	c, ok := r.matcher.Best(rec.Key)
	if !ok {
		return Attempt{}, false
	}
	e := c.Entity
	return Attempt{Kind: Fuzzy, Entity: &e, Score: c.Score}, true
}

func continentValue(e geo.ReferenceEntity) (string, string) {
	if !e.Continent.IsValid() {
		return "", "continent"
	}
	return e.Continent.String(), ""
}

func codeValue(e geo.ReferenceEntity) (string, string) {
	if !e.HasCode() {
		return "", "code"
	}
	return e.ISOAlpha2, ""
}

func byName(rec Record) string { return rec.Name }
func byKey(rec Record) string  { return rec.Key }

// chainFor builds the ordered resolver chain for a mode. It also returns the
// exact matcher so its index duplicates can be reported.
func chainFor(mode Mode, entities []geo.ReferenceEntity, overlay *match.Overlay, normalizer match.Normalizer) ([]Resolver, *match.ExactMatcher, error) {
	switch mode {
	case ModeContinents:
		exact := match.NewExactMatcher(entities, match.ByAlpha2, normalizer)
		return []Resolver{
			&exactResolver{name: "exact-code", matcher: exact, value: continentValue, passOnEmpty: true},
			&overlayResolver{name: "overlay-continent", lookup: continentLookup(overlay), field: byName},
		}, exact, nil
	case ModeLabels:
		exact := match.NewExactMatcher(entities, match.ByName, normalizer)
		return []Resolver{
			&exactResolver{name: "exact-name", matcher: exact, value: codeValue},
			&overlayResolver{name: "overlay-label", lookup: overlay.Label, field: byKey},
			&fuzzyResolver{matcher: match.NewFuzzyMatcher(entities)},
		}, exact, nil
	default:
		return nil, nil, fmt.Errorf("no resolver chain for mode %q", mode)
	}
}

func continentLookup(overlay *match.Overlay) func(string) (string, bool) {
	return func(name string) (string, bool) {
		c, ok := overlay.Continent(name)
		return c.String(), ok
	}
}

package geo

// Group is the slice of a reference set belonging to one continent.
type Group struct {
	Continent Continent
	Entities  []ReferenceEntity
}

// ReferenceSet is an ordered, read-only collection of reference entities.
// It is built once and never mutated, so it is safe to share between goroutines.
type ReferenceSet struct {
	entities []ReferenceEntity
	groups   []Group
	issues   []error
}

// NewReferenceSet builds a reference set preserving the given load order.
func NewReferenceSet(entities []ReferenceEntity) *ReferenceSet {
	s := &ReferenceSet{entities: append([]ReferenceEntity(nil), entities...)}

	index := make(map[Continent]int)
	for _, e := range s.entities {
		i, ok := index[e.Continent]
		if !ok {
			i = len(s.groups)
			index[e.Continent] = i
			s.groups = append(s.groups, Group{Continent: e.Continent})
		}
		s.groups[i].Entities = append(s.groups[i].Entities, e)
	}
	return s
}

// Len returns the number of entities.
func (s *ReferenceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entities)
}

// Entities returns a copy of the entities in load order.
func (s *ReferenceSet) Entities() []ReferenceEntity {
	if s == nil {
		return nil
	}
	return append([]ReferenceEntity(nil), s.entities...)
}

// Groups returns the entities grouped by continent. Groups appear in the
// load order of their first entity.
func (s *ReferenceSet) Groups() []Group {
	if s == nil {
		return nil
	}
	out := make([]Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = Group{Continent: g.Continent, Entities: append([]ReferenceEntity(nil), g.Entities...)}
	}
	return out
}

// Issues returns the problems recorded while ingesting the set: skipped
// sheets and rows.
func (s *ReferenceSet) Issues() []error {
	if s == nil {
		return nil
	}
	return append([]error(nil), s.issues...)
}

// FindByAlpha2 returns the first entity, in load order, with the given code.
func (s *ReferenceSet) FindByAlpha2(code string) (ReferenceEntity, bool) {
	if s == nil || !IsPresent(code) {
		return ReferenceEntity{}, false
	}
	for _, e := range s.entities {
		if e.ISOAlpha2 == code {
			return e, true
		}
	}
	return ReferenceEntity{}, false
}

// Package geo holds the canonical country/territory data model and the
// ingestion of reference tables into an ordered, read-only ReferenceSet.
package geo

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/georecon/pkg/errors"
)

// NotApplicable marks an identifier cell that was missing in the source table.
const NotApplicable = "N/A"

// Continent names the continent a reference entity belongs to.
type Continent string

// Known continents. Unassigned is the zero value.
const (
	Unassigned   Continent = ""
	Africa       Continent = "Africa"
	Antarctica   Continent = "Antarctica"
	Asia         Continent = "Asia"
	Europe       Continent = "Europe"
	NorthAmerica Continent = "North America"
	Oceania      Continent = "Oceania"
	SouthAmerica Continent = "South America"
)

// Continents lists every assignable continent in alphabetical order.
var Continents = []Continent{Africa, Antarctica, Asia, Europe, NorthAmerica, Oceania, SouthAmerica}

// String returns the continent name.
func (c Continent) String() string {
	return string(c)
}

// IsValid reports whether c is one of the known continents.
func (c Continent) IsValid() bool {
	for _, known := range Continents {
		if c == known {
			return true
		}
	}
	return false
}

// ParseContinent parses a continent name, ignoring case and surrounding or
// repeated whitespace.
func ParseContinent(s string) (Continent, error) {
	title := cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
	c := Continent(title)
	if !c.IsValid() {
		return Unassigned, errors.NewValidationError("continent", s, fmt.Sprintf("unknown continent %q", s))
	}
	return c, nil
}

// ReferenceEntity is one canonical country or territory.
type ReferenceEntity struct {
	Name      string    `json:"name" yaml:"name"`
	ISOAlpha2 string    `json:"ISO-3166-2" yaml:"iso_3166_2"`
	ISOAlpha3 string    `json:"ISO-3166-3" yaml:"iso_3166_3"`
	CCTLD     string    `json:"ccTLD" yaml:"cctld"`
	Continent Continent `json:"continent,omitempty" yaml:"continent,omitempty"`
}

// HasCode reports whether the entity carries a usable alpha-2 code.
func (e ReferenceEntity) HasCode() bool {
	return IsPresent(e.ISOAlpha2)
}

// IsPresent reports whether an identifier cell holds a real value.
func IsPresent(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != NotApplicable
}

// orNotApplicable returns the trimmed cell or NotApplicable when it is blank.
func orNotApplicable(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return NotApplicable
	}
	return v
}

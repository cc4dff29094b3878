package match

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
)

// DefaultContinentExceptions returns the curated continent assignments for
// territories the reference workbook does not place on a continent.
func DefaultContinentExceptions() map[string]geo.Continent {
	return map[string]geo.Continent{
		"Antarctica":       geo.Antarctica,
		"Aland Islands":    geo.Europe,
		"Saint Barthelemy": geo.NorthAmerica,
		"Bouvet Island":    geo.Europe,
		"Western Sahara":   geo.Africa,
		"Guernsey":         geo.Europe,
		"South Georgia and the South Sandwich Islands": geo.Antarctica,
		"Heard Island and McDonald Islands":            geo.Antarctica,
		"Jersey":                                       geo.Europe,
		"Saint Martin (French part)":                   geo.NorthAmerica,
		"Pitcairn":                                     geo.Oceania,
		"Svalbard and Jan Mayen":                       geo.Europe,
		"French Southern Territories":                  geo.Antarctica,
	}
}

// OverlayFile is the on-disk form of an overlay.
type OverlayFile struct {
	// Continents maps a country name to its forced continent.
	Continents map[string]string `yaml:"continents,omitempty" json:"continents,omitempty"`
	// Labels maps a map label to its forced code.
	Labels map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// Section is a read-only name to value table with exact then normalized lookup.
type Section struct {
	entries    map[string]string
	normalized map[string]string
	normalizer Normalizer
}

func newSection(entries map[string]string, normalizer Normalizer) *Section {
	s := &Section{
		entries:    make(map[string]string, len(entries)),
		normalized: make(map[string]string, len(entries)),
		normalizer: normalizer,
	}
	// Sorted so that keys colliding after normalization resolve the same way every run.
	for _, k := range sortedKeys(entries) {
		s.entries[k] = entries[k]
		nk := normalizer.Normalize(k)
		if _, taken := s.normalized[nk]; !taken && nk != "" {
			s.normalized[nk] = entries[k]
		}
	}
	return s
}

// Lookup returns the forced value for name, trying the exact key first and
// then the normalized key.
func (s *Section) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	if v, ok := s.entries[name]; ok {
		return v, true
	}
	v, ok := s.normalized[s.normalizer.Normalize(name)]
	return v, ok
}

// Len returns the number of entries.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of the entries.
func (s *Section) Entries() map[string]string {
	out := make(map[string]string, s.Len())
	if s != nil {
		for k, v := range s.entries {
			out[k] = v
		}
	}
	return out
}

// Overlay holds the exception tables consulted when exact matching fails.
// An overlay hit takes precedence over any fuzzy result.
type Overlay struct {
	continents *Section
	labels     *Section
}

// NewOverlay validates f and builds an overlay from it.
func NewOverlay(f OverlayFile, normalizer Normalizer) (*Overlay, error) {
	continents := make(map[string]string, len(f.Continents))
	for name, value := range f.Continents {
		c, err := geo.ParseContinent(value)
		if err != nil {
			return nil, fmt.Errorf("overlay continent for %q: %w", name, err)
		}
		continents[name] = c.String()
	}
	for name, value := range f.Labels {
		if !geo.IsPresent(value) {
			return nil, errors.NewValidationError("labels", name, fmt.Sprintf("empty code for label %q", name))
		}
	}
	return &Overlay{
		continents: newSection(continents, normalizer),
		labels:     newSection(f.Labels, normalizer),
	}, nil
}

// DefaultOverlay returns an overlay holding only the curated continent exceptions.
func DefaultOverlay(normalizer Normalizer) *Overlay {
	o, _ := NewOverlay(DefaultOverlayFile(), normalizer)
	return o
}

// DefaultOverlayFile returns the curated continent exceptions as a file.
func DefaultOverlayFile() OverlayFile {
	f := OverlayFile{Continents: make(map[string]string), Labels: make(map[string]string)}
	for name, c := range DefaultContinentExceptions() {
		f.Continents[name] = c.String()
	}
	return f
}

// Continent returns the forced continent for a country name.
func (o *Overlay) Continent(name string) (geo.Continent, bool) {
	if o == nil {
		return geo.Unassigned, false
	}
	v, ok := o.continents.Lookup(name)
	return geo.Continent(v), ok
}

// Label returns the forced code for a map label.
func (o *Overlay) Label(name string) (string, bool) {
	if o == nil {
		return "", false
	}
	return o.labels.Lookup(name)
}

// Continents returns the continent section.
func (o *Overlay) Continents() *Section { return o.continents }

// Labels returns the label section.
func (o *Overlay) Labels() *Section { return o.labels }

// File returns the overlay in its on-disk form.
func (o *Overlay) File() OverlayFile {
	return OverlayFile{Continents: o.continents.Entries(), Labels: o.labels.Entries()}
}

// Merge layers the entries of top over base. Entries in top win.
func Merge(base, top OverlayFile) OverlayFile {
	out := OverlayFile{Continents: make(map[string]string), Labels: make(map[string]string)}
	for _, src := range []OverlayFile{base, top} {
		for k, v := range src.Continents {
			out.Continents[k] = v
		}
		for k, v := range src.Labels {
			out.Labels[k] = v
		}
	}
	return out
}

// ReadOverlayFile decodes a YAML overlay file.
func ReadOverlayFile(path string) (OverlayFile, error) {
	var f OverlayFile
	data, err := os.ReadFile(path)
	if err != nil {
		return f, errors.WrapSource("overlay", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, errors.WrapParse("yaml", path, err)
	}
	return f, nil
}

// WriteOverlayFile encodes f as YAML at path.
func WriteOverlayFile(path string, f OverlayFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding overlay: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// LoadOverlay reads the overlay at path and layers it over the curated
// defaults. An empty path yields the defaults alone.
func LoadOverlay(path string, normalizer Normalizer) (*Overlay, error) {
	f := DefaultOverlayFile()
	if path != "" {
		fromFile, err := ReadOverlayFile(path)
		if err != nil {
			return nil, err
		}
		f = Merge(f, fromFile)
	}
	return NewOverlay(f, normalizer)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package sources defines the foreign records georecon reconciles and the
// kinds of inputs they are read from. Loaders live in internal/sources.
package sources

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/agentstation/georecon/pkg/errors"
)

// Type names an input or output of a run.
type Type string

// Input and output kinds.
const (
	Borders    Type = "borders"
	Codes      Type = "codes"
	Continents Type = "continents"
	Workbook   Type = "workbook"
	Map        Type = "map"
	Overlay    Type = "overlay"
	Report     Type = "report"
)

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// Border is one entry of the country borders dataset. Fields other than the
// code, name and continent are kept as-is and written back unchanged, in the
// order they were read.
type Border struct {
	CountryCode string
	CountryName string
	Continent   string

	extra map[string]json.RawMessage
	order []string
}

const (
	fieldCode      = "country_code"
	fieldName      = "country_name"
	fieldContinent = "continent"
)

var knownFields = []string{fieldCode, fieldName, fieldContinent}

// UnmarshalJSON decodes a border entry, keeping unknown fields and the key order.
func (b *Border) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.NewValidationError("border", tok, "expected a JSON object")
	}

	*b = Border{}
	raw := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if _, seen := raw[key]; !seen {
			b.order = append(b.order, key)
		}
		raw[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	for _, key := range knownFields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, b.field(key)); err != nil && !bytes.Equal(v, []byte("null")) {
			return err
		}
		delete(raw, key)
	}
	if len(raw) > 0 {
		b.extra = raw
	}
	return nil
}

// MarshalJSON encodes a border entry with its unknown fields in their read
// order. Known fields absent from the input follow in code, name, continent
// order. The continent is omitted while unset.
func (b Border) MarshalJSON() ([]byte, error) {
	candidates := append(append([]string(nil), b.order...), knownFields...)
	keys := make([]string, 0, len(candidates))
	written := make(map[string]bool, len(candidates))
	for _, key := range candidates {
		if !written[key] {
			written[key] = true
			keys = append(keys, key)
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, key := range keys {
		var value json.RawMessage
		if field := b.field(key); field != nil {
			if key == fieldContinent && *field == "" {
				continue
			}
			enc, err := json.Marshal(*field)
			if err != nil {
				return nil, err
			}
			value = enc
		} else if v, ok := b.extra[key]; ok {
			value = v
		} else {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *Border) field(key string) *string {
	switch key {
	case fieldCode:
		return &b.CountryCode
	case fieldName:
		return &b.CountryName
	case fieldContinent:
		return &b.Continent
	}
	return nil
}

// Extra returns the names of the preserved unknown fields, sorted.
func (b Border) Extra() []string {
	keys := make([]string, 0, len(b.extra))
	for k := range b.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Feature is one labeled shape of a map. Label is the name the map uses;
// ID is the identifier written back, which starts out equal to Label.
type Feature struct {
	Index int
	Label string
	ID    string
}

// Relabeled reports whether the feature's identifier was changed.
func (f Feature) Relabeled() bool {
	return f.ID != f.Label
}

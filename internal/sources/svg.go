package sources

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"regexp"

	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/sources"
)

// idAttr finds the id attribute inside a raw start tag.
var idAttr = regexp.MustCompile(`\sid\s*=\s*("[^"]*"|'[^']*')`)

// shape is a drawable element carrying both id and d.
// start and end bound the id value in the source, quotes excluded.
type shape struct {
	id      string
	start   int
	end     int
	changed bool
}

// Map is a parsed SVG map whose labeled shapes can be relabeled in place.
// Only id values of labeled shapes are rewritten; every other byte of the
// document is written back unchanged.
type Map struct {
	data   []byte
	shapes []*shape
}

// ReadMap parses the SVG map at path.
func ReadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapSource(sources.Map.String(), path, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, errors.WrapSource(sources.Map.String(), path, errors.WrapParse("svg", path, err))
	}
	return m, nil
}

// ParseMap parses an SVG document. The root element must be svg.
func ParseMap(data []byte) (*Map, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Entity = xml.HTMLEntity

	m := &Map{data: data}
	rooted := false
	for {
		offset := d.InputOffset()
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !rooted {
			if se.Name.Local != "svg" {
				return nil, errors.NewValidationError("svg", se.Name.Local, "root element is not <svg>")
			}
			rooted = true
		}

		id, hasID := attr(se, "id")
		if _, hasD := attr(se, "d"); !hasID || !hasD {
			continue
		}
		loc := idAttr.FindSubmatchIndex(data[offset:d.InputOffset()])
		if loc == nil {
			continue
		}
		m.shapes = append(m.shapes, &shape{
			id:    id,
			start: int(offset) + loc[2] + 1,
			end:   int(offset) + loc[3] - 1,
		})
	}
	if !rooted {
		return nil, errors.NewValidationError("svg", nil, "no <svg> root element")
	}
	return m, nil
}

func attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Features returns the labeled shapes in document order.
func (m *Map) Features() []sources.Feature {
	features := make([]sources.Feature, len(m.shapes))
	for i, s := range m.shapes {
		features[i] = sources.Feature{Index: i, Label: s.id, ID: s.id}
	}
	return features
}

// Apply writes each feature's ID back to its shape and returns how many
// shapes changed.
func (m *Map) Apply(features []sources.Feature) int {
	changed := 0
	for _, f := range features {
		if f.Index < 0 || f.Index >= len(m.shapes) {
			continue
		}
		s := m.shapes[f.Index]
		if s.id != f.ID {
			s.id = f.ID
			s.changed = true
			changed++
		}
	}
	return changed
}

// WriteTo renders the map.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.Grow(len(m.data))
	last := 0
	for _, s := range m.shapes {
		if !s.changed {
			continue
		}
		buf.Write(m.data[last:s.start])
		if err := xml.EscapeText(&buf, []byte(s.id)); err != nil {
			return 0, err
		}
		last = s.end
	}
	buf.Write(m.data[last:])
	return buf.WriteTo(w)
}

// Save renders the map to path.
func (m *Map) Save(path string) error {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return errors.WrapParse("svg", path, err)
	}
	return writeFile(path, buf.Bytes())
}

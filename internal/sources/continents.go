package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/sources"
)

// continentRow is one entity as stored under its continent key.
type continentRow struct {
	Name      string `json:"name"`
	ISOAlpha2 string `json:"ISO-3166-2"`
	ISOAlpha3 string `json:"ISO-3166-3"`
	CCTLD     string `json:"ccTLD"`
}

// ReadContinents decodes a continents reference: a JSON object mapping each
// continent to its entities. Object order is kept as load order.
func ReadContinents(path string) (*geo.ReferenceSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapSource(sources.Continents.String(), path, err)
	}
	set, err := ParseContinents(data)
	if err != nil {
		return nil, errors.WrapSource(sources.Continents.String(), path, errors.WrapParse("json", path, err))
	}
	return set, nil
}

// ParseContinents decodes a continents reference from data.
func ParseContinents(data []byte) (*geo.ReferenceSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var entities []geo.ReferenceEntity
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		continent, err := geo.ParseContinent(name)
		if err != nil {
			return nil, err
		}

		var rows []continentRow
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("continent %s: %w", name, err)
		}
		for _, r := range rows {
			entities = append(entities, geo.ReferenceEntity{
				Name:      r.Name,
				ISOAlpha2: r.ISOAlpha2,
				ISOAlpha3: r.ISOAlpha3,
				CCTLD:     r.CCTLD,
				Continent: continent,
			})
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return geo.NewReferenceSet(entities), nil
}

// WriteContinents encodes set grouped by continent, in group order.
func WriteContinents(path string, set *geo.ReferenceSet) error {
	data, err := EncodeContinents(set)
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	return writeFile(path, data)
}

// EncodeContinents renders set as an indented continents object.
func EncodeContinents(set *geo.ReferenceSet) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, g := range set.Groups() {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(g.Continent.String())
		if err != nil {
			return nil, err
		}
		rows := make([]continentRow, len(g.Entities))
		for j, e := range g.Entities {
			rows[j] = continentRow{Name: e.Name, ISOAlpha2: e.ISOAlpha2, ISOAlpha3: e.ISOAlpha3, CCTLD: e.CCTLD}
		}
		value, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":")
		buf.Write(value)
	}
	buf.WriteString("}")

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, found %v", want, tok)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	return nil
}

package sources

import (
	"encoding/json"
	"os"

	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/sources"
)

// ReadBorders decodes the borders dataset, a JSON array of entries.
func ReadBorders(path string) ([]sources.Border, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapSource(sources.Borders.String(), path, err)
	}
	var borders []sources.Border
	if err := json.Unmarshal(data, &borders); err != nil {
		return nil, errors.WrapSource(sources.Borders.String(), path, errors.WrapParse("json", path, err))
	}
	return borders, nil
}

// WriteBorders encodes borders back to path, indented by four spaces.
func WriteBorders(path string, borders []sources.Border) error {
	if borders == nil {
		borders = []sources.Border{}
	}
	data, err := json.MarshalIndent(borders, "", "    ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

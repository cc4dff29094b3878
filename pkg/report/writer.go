package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"

	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/errors"
)

// Format is a report encoding.
type Format string

// Supported report formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", errors.NewValidationError("format", s, fmt.Sprintf("unsupported report format %q", s))
	}
}

// FormatForPath infers the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatJSON
	}
}

// Writer persists reports.
type Writer struct {
	Path   string
	Format Format
}

// Write encodes r at w.Path. An empty report writes nothing and creates no file.
func (w Writer) Write(r *Report) error {
	if r.IsEmpty() {
		return nil
	}
	format := w.Format
	if format == "" {
		format = FormatForPath(w.Path)
	}

	data, err := Encode(r, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(w.Path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := os.WriteFile(w.Path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", w.Path, err)
	}
	return nil
}

// Encode renders r in the given format.
func Encode(r *Report, format Format) ([]byte, error) {
	entries := r.Entries
	if entries == nil {
		entries = []Entry{}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("encoding report: %w", err)
		}
		return data, nil
	case FormatMarkdown:
		return encodeMarkdown(entries)
	default:
		return nil, errors.NewValidationError("format", string(format), "unsupported report format")
	}
}

func encodeMarkdown(entries []Entry) ([]byte, error) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Label, e.Candidate, strconv.Itoa(e.Score), e.Target})
	}

	var buf bytes.Buffer
	err := md.NewMarkdown(&buf).
		H1("Unresolved matches").
		PlainTextf("Generated %s. Fill the Target column and import the file into the overlay.",
			utc.Now().Time.Format("2006-01-02 15:04 MST")).
		LF().
		Table(md.TableSet{
			Header: []string{"Label", "Candidate", "Score", "Target"},
			Rows:   rows,
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("rendering markdown report: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads a reviewed JSON or YAML report.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapSource("report", path, err)
	}

	var entries []Entry
	switch format := FormatForPath(path); format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, errors.WrapParse("yaml", path, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, errors.WrapParse("json", path, err)
		}
	default:
		return nil, errors.NewValidationError("format", string(format), "only json and yaml reports can be loaded")
	}
	return &Report{Entries: entries}, nil
}

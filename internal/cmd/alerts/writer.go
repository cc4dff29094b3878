package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/agentstation/georecon/internal/cmd/output"
)

// Writer writes alerts in the format the summaries use, so that piped JSON
// output stays machine readable.
type Writer struct {
	w           io.Writer
	format      output.Format
	useColor    bool
	showDetails bool
}

// NewWriter creates a Writer for the given format.
func NewWriter(w io.Writer, format output.Format) *Writer {
	return &Writer{
		w:           w,
		format:      format,
		useColor:    isTerminal(w),
		showDetails: true,
	}
}

// WithColor forces color on or off.
func (aw *Writer) WithColor(on bool) *Writer {
	aw.useColor = on
	return aw
}

// Write writes one alert.
func (aw *Writer) Write(alert *Alert) error {
	switch aw.format {
	case output.FormatJSON:
		return json.NewEncoder(aw.w).Encode(toData(alert))
	case output.FormatYAML:
		data, err := yaml.Marshal([]alertData{toData(alert)})
		if err != nil {
			return err
		}
		_, err = aw.w.Write(data)
		return err
	default:
		return aw.writeText(alert)
	}
}

type alertData struct {
	Level     string   `json:"level" yaml:"level"`
	Message   string   `json:"message" yaml:"message"`
	Details   []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
}

func toData(alert *Alert) alertData {
	data := alertData{
		Level:     alert.Level.String(),
		Message:   alert.Message,
		Details:   alert.Details,
		Timestamp: alert.Timestamp.Time.Format("2006-01-02T15:04:05Z07:00"),
	}
	if alert.Err != nil {
		data.Error = alert.Err.Error()
	}
	return data
}

func (aw *Writer) writeText(alert *Alert) error {
	message := alert.String()
	if aw.useColor {
		message = alert.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(aw.w, message); err != nil {
		return err
	}
	if aw.showDetails {
		for _, detail := range alert.Details {
			if _, err := fmt.Fprintf(aw.w, "   %s\n", detail); err != nil {
				return err
			}
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package alerts

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/georecon/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	a := NewError("reading borders").WithError(errors.New("no such file"))
	assert.Equal(t, "✗ reading borders: no such file", a.String())
	assert.Equal(t, "success", NewSuccess("done").Level.String())
}

func TestWriterText(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatTable)
	require.NoError(t, w.Write(NewWarning("2 labels need review").WithDetails("failed_matches.json")))
	assert.Equal(t, "! 2 labels need review\n   failed_matches.json\n", buf.String())
}

func TestWriterColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatTable).WithColor(true)
	require.NoError(t, w.Write(NewSuccess("ok")))
	assert.Contains(t, buf.String(), "\033[32m")
}

func TestWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatJSON)
	require.NoError(t, w.Write(NewInfo("wrote continents.json").WithDetails("6 continents")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "info", got["level"])
	assert.Equal(t, "wrote continents.json", got["message"])
	assert.NotEmpty(t, got["timestamp"])
}

func TestWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatYAML)
	require.NoError(t, w.Write(NewSuccess("ok")))
	assert.Contains(t, buf.String(), "level: success")
	assert.Contains(t, buf.String(), "message: ok")
}

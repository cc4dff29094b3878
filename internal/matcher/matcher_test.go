package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		typ      PatternType
		wantType PatternType
		wantErr  bool
	}{
		{name: "glob", pattern: "*America", typ: Glob, wantType: Glob},
		{name: "regex", pattern: "^Europe$", typ: Regex, wantType: Regex},
		{name: "invalid regex", pattern: "(unclosed", typ: Regex, wantErr: true},
		{name: "auto glob", pattern: "Asia", typ: Auto, wantType: Glob},
		{name: "auto regex", pattern: "(Africa|Asia)", typ: Auto, wantType: Regex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.typ, tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	glob, err := New(Glob, "north*")
	require.NoError(t, err)
	assert.True(t, glob.Match("North America"))
	assert.False(t, glob.Match("South America"))

	re, err := New(Regex, "^south")
	require.NoError(t, err)
	assert.True(t, re.Match("South America"))
	assert.False(t, re.Match("North America"))
}

func TestSet(t *testing.T) {
	sheets := []string{"Africa", "Asia", "Europe", "North America", "Notes"}

	empty, err := Compile()
	require.NoError(t, err)
	assert.Equal(t, sheets, empty.Filter(sheets...))

	set, err := Compile("A*", "", "europe")
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Equal(t, []string{"Africa", "Asia", "Europe"}, set.Filter(sheets...))

	_, err = Compile("(bad")
	assert.Error(t, err)
}

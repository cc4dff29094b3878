package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/match"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 100},
		{"France", "France", 100},
		{"abc", "", 0},
		{"abc", "xyz", 0},
		{"kitten", "sitting", 57},
		{"Åland", "Aland", 80},
	}
	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, match.Ratio(tt.a, tt.b))
			assert.Equal(t, tt.want, match.Ratio(tt.b, tt.a), "symmetric")
		})
	}
}

func TestRatioBounds(t *testing.T) {
	labels := []string{"", "a", "South-Korea", "Republic of Korea", "日本", "Bosnia and Herzegovina"}
	for _, a := range labels {
		for _, b := range labels {
			score := match.Ratio(a, b)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestFuzzyBest(t *testing.T) {
	m := match.NewFuzzyMatcher([]geo.ReferenceEntity{
		{Name: "Republic of Korea", ISOAlpha2: "KR"},
		{Name: "France", ISOAlpha2: "FR"},
		{Name: "Japan", ISOAlpha2: "JP"},
	})

	c, ok := m.Best("South-Korea")
	require.True(t, ok)
	assert.Equal(t, "Republic of Korea", c.Entity.Name)
	assert.Greater(t, c.Score, 0)
	assert.Less(t, c.Score, 100)
}

func TestFuzzyBestFirstMaximumWins(t *testing.T) {
	m := match.NewFuzzyMatcher([]geo.ReferenceEntity{
		{Name: "abc", ISOAlpha2: "AA"},
		{Name: "abd", ISOAlpha2: "BB"},
		{Name: "zzz", ISOAlpha2: "CC"},
	})

	c, ok := m.Best("abx")
	require.True(t, ok)
	assert.Equal(t, "AA", c.Entity.ISOAlpha2)

	c, ok = m.Best("qqq")
	require.True(t, ok)
	assert.Equal(t, 0, c.Score)
	assert.Equal(t, "AA", c.Entity.ISOAlpha2, "all-zero scores keep the first entity")
}

func TestFuzzyBestEmptyReference(t *testing.T) {
	_, ok := match.NewFuzzyMatcher(nil).Best("France")
	assert.False(t, ok)
}

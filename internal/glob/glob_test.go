package glob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Compare(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name    string
		pattern string
		entry   string
		want    Result
	}{
		{"star matches anything", "*", "report.txt", Match},
		{"star matches deleted name", "*", ".#b", Match},
		{"suffix star", "*.txt", "report.txt", Match},
		{"suffix star miss", "*.txt", "report.md", NoMatch},
		{"single char", "file?", "file1", Match},
		{"single char needs one", "file?", "file", NoMatch},
		{"class", "[ab]x", "bx", Match},
		{"class miss", "[ab]x", "cx", NoMatch},
		{"negated class", "[!ab]x", "cx", Match},
		{"caret negation", "[^ab]x", "ax", NoMatch},
		{"range", "v[0-9]", "v7", Match},
		{"literal", "notes", "notes", Match},
		{"literal miss", "notes", "notes2", NoMatch},
		{"escaped star is literal", `a\*`, "a*", Match},
		{"escaped star miss", `a\*`, "ab", NoMatch},
		{"braces are literal", "{a,b}", "{a,b}", Match},
		{"braces do not alternate", "{a,b}", "a", NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Compare(tt.pattern, tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_CompareMalformed(t *testing.T) {
	m := NewMatcher()

	_, err := m.Compare("[abc", "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedPattern))

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "[abc", perr.Component)
}

func TestMatcher_Validate(t *testing.T) {
	m := NewMatcher()

	assert.NoError(t, m.Validate("/usr/*/bin"))
	assert.NoError(t, m.Validate("plain/path"))
	assert.NoError(t, m.Validate(""))

	err := m.Validate("/usr/[bad/bin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPattern)
}

func TestMatcher_CachesCompiledComponents(t *testing.T) {
	m := NewMatcher()

	_, err := m.Compare("*.go", "a.go")
	require.NoError(t, err)
	_, err = m.Compare("*.go", "b.go")
	require.NoError(t, err)

	assert.Len(t, m.cache, 1)
}

func TestHasWildcards(t *testing.T) {
	tests := []struct {
		component string
		want      bool
	}{
		{"plain", false},
		{"*", true},
		{"a?c", true},
		{"[ab]", true},
		{`a\*`, false},
		{`a\?b\[`, false},
		{`\\*`, true},
		{"{a,b}", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			assert.Equal(t, tt.want, HasWildcards(tt.component))
		})
	}
}

func TestUnescapeAndEscape(t *testing.T) {
	assert.Equal(t, "a*b", Unescape(`a\*b`))
	assert.Equal(t, "plain", Unescape("plain"))
	assert.Equal(t, `a\b`, Unescape(`a\\b`))

	for _, name := range []string{"plain", "a*b", "what?", "[x]", `back\slash`} {
		escaped := Escape(name)
		assert.False(t, HasWildcards(escaped), "escaped %q still has wildcards", name)
		assert.Equal(t, name, Unescape(escaped))
	}
}

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harrison/salvage/internal/manifest"
	"github.com/harrison/salvage/internal/match"
)

func TestFind_Selection(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default is undeleted", []string{"d/*"}, []string{"d/a", "d/sub"}},
		{"deleted", []string{"-d", "d/*"}, []string{"d/.#b"}},
		{"both", []string{"-u", "-d", "d/*"}, []string{"d/a", "d/.#b", "d/sub"}},
		{"contents", []string{"-c", "d/sub"}, []string{"d/sub/c", "d/sub"}},
		{"recursive deleted", []string{"-d", "--recurs-find-deleted", "d"}, []string{"d/.#b", "d/sub/.#e"}},
		{"recursive implies undeleted", []string{"--recurs-find-deleted", "d"}, []string{"d/a", "d/.#b", "d/sub", "d/sub/c", "d/sub/.#e", "d"}},
		{"dotfiles", []string{"-a", "d/*"}, []string{"d/a", "d/.hidden", "d/sub"}},
		{"literal deleted name", []string{"-d", "d/b"}, []string{"d/.#b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace(t, "d/a", "d/.#b", "d/.hidden", "d/sub/c", "d/sub/.#e")

			stdout, stderr, err := execute(t, append([]string{"find", "-1"}, tt.args...)...)
			require.NoError(t, err, stderr)
			assert.ElementsMatch(t, tt.want, lines(stdout))
			assert.Empty(t, stderr)
		})
	}
}

func TestFind_Columns(t *testing.T) {
	workspace(t, "d/a", "d/.#b")

	stdout, _, err := execute(t, "find", "-u", "-d", "d/*")
	require.NoError(t, err)
	out := lines(stdout)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "d/a")
	assert.Contains(t, out[0], "d/.#b")
}

func TestFind_NoResults(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"wildcard", []string{"nothing/*"}, "salvage: nothing/*: No match"},
		{"missing literal", []string{"missing"}, "salvage: missing: No such file or directory"},
		{"existing literal", []string{"-d", "d/a"}, "salvage: d/a: nothing to list"},
		{"malformed", []string{"d/[x"}, `salvage: d/[x: malformed pattern`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace(t, "d/a")

			stdout, stderr, err := execute(t, append([]string{"find"}, tt.args...)...)
			assert.ErrorIs(t, err, ErrPatternsFailed)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.message)
		})
	}
}

func TestFind_PartialFailure(t *testing.T) {
	workspace(t, "d/a")

	stdout, stderr, err := execute(t, "find", "-1", "missing", "d/a")
	assert.ErrorIs(t, err, ErrPatternsFailed)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Equal(t, []string{"d/a"}, lines(stdout))
	assert.Contains(t, stderr, "missing: No such file or directory")
}

func TestFind_NoFilesRequested(t *testing.T) {
	workspace(t, "d/a")

	_, _, err := execute(t, "find", "--undeleted=false", "--recurs-deleted", "d")
	assert.ErrorIs(t, err, match.ErrNoFilesRequested)

	_, _, err = execute(t, "find", "--undeleted=false", "d")
	assert.ErrorIs(t, err, match.ErrNoFilesRequested)
}

func TestFind_Literal(t *testing.T) {
	workspace(t, "d/odd[1]", "d/odd1")

	stdout, _, err := execute(t, "find", "-1", "--literal", "d/odd[1]")
	require.NoError(t, err)
	assert.Equal(t, []string{"d/odd[1]"}, lines(stdout))

	stdout, _, err = execute(t, "find", "-1", "d/odd[1]")
	require.NoError(t, err)
	assert.Equal(t, []string{"d/odd1"}, lines(stdout))
}

func TestFind_Manifest(t *testing.T) {
	root := workspace(t, "d/a", "d/.#b")
	path := filepath.Join(root, "out", "manifest.yaml")

	_, stderr, err := execute(t, "find", "-u", "-d", "-L", "--manifest", path, "d/*", "none/*")
	assert.ErrorIs(t, err, ErrPatternsFailed)
	assert.Contains(t, stderr, "manifest")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m manifest.Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, "find", m.Command)
	assert.Equal(t, "FindUndeleted|FindDeleted|FollowLinks", m.Options)
	require.Len(t, m.Results, 2)
	assert.ElementsMatch(t, []string{"d/a", "d/.#b"}, m.Results[0].Matches)
	assert.Contains(t, m.Results[1].Error, "No match")
}

func TestFind_ConfigFile(t *testing.T) {
	root := workspace(t, "d/a", "d/~z", "d/.#b")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".salvage"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".salvage", "config.yaml"), []byte("deleted_marker: \"~\"\n"), 0644))

	stdout, _, err := execute(t, "find", "-1", "-d", "d/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"d/~z"}, lines(stdout))

	// An explicit config file replaces the project one.
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("columns_width: 40\n"), 0644))
	stdout, _, err = execute(t, "find", "-1", "-d", "--config", explicit, "d/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"d/.#b"}, lines(stdout))
}

func TestFind_InvalidConfig(t *testing.T) {
	root := workspace(t, "d/a")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".salvage"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".salvage", "config.yaml"), []byte("log_level: loud\n"), 0644))

	_, _, err := execute(t, "find", "d/*")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	// The flag fixes what the file broke.
	_, _, err = execute(t, "find", "--log-level", "warn", "d/*")
	assert.NoError(t, err)
}

func TestFind_LogDir(t *testing.T) {
	root := workspace(t, "d/a")
	logDir := filepath.Join(root, "logs")

	_, _, err := execute(t, "find", "--log-dir", logDir, "d/*")
	require.NoError(t, err)

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(logDir, target))
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== Run Summary ===")
	assert.Contains(t, string(data), "Matches: 1")
}

func TestFind_DebugSummary(t *testing.T) {
	workspace(t, "d/a")

	_, stderr, err := execute(t, "find", "--log-level", "debug", "d/*")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[DEBUG] find: 1 patterns")
	assert.True(t, strings.Contains(stderr, "1 match for 1 pattern"), stderr)
}

func TestFind_SummaryCountsManifestResults(t *testing.T) {
	workspace(t, "d/a", "d/b")

	_, stderr, err := execute(t, "find", "--log-level", "debug", "d/*", "none/*")
	assert.ErrorIs(t, err, ErrPatternsFailed)
	assert.Contains(t, stderr, "2 matches for 2 patterns")
}

func TestFind_RequiresPattern(t *testing.T) {
	workspace(t)

	_, _, err := execute(t, "find")
	assert.Error(t, err)
}

// Package manifest records the outcome of a salvage run as a YAML document
// so that later recovery steps can work from a fixed list of paths.
package manifest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/harrison/salvage/internal/match"
)

// Manifest is one run's record.
type Manifest struct {
	RunID         string          `yaml:"run_id"`
	Command       string          `yaml:"command"`
	CreatedAt     time.Time       `yaml:"created_at"`
	Options       string          `yaml:"options"`
	DeletedMarker string          `yaml:"deleted_marker"`
	Results       []PatternResult `yaml:"results"`
	Issues        []Issue         `yaml:"issues,omitempty"`
}

// PatternResult holds the matches of one pattern, or why it failed.
type PatternResult struct {
	Pattern string   `yaml:"pattern"`
	Matches []string `yaml:"matches"`
	Error   string   `yaml:"error,omitempty"`
}

// Issue is a recoverable traversal problem.
type Issue struct {
	Path     string `yaml:"path"`
	Severity string `yaml:"severity"`
	Error    string `yaml:"error"`
}

// New starts a manifest for command run with opts.
func New(command string, opts match.Options, marker string) *Manifest {
	return &Manifest{
		RunID:         uuid.NewString(),
		Command:       command,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		Options:       opts.String(),
		DeletedMarker: marker,
	}
}

// AddResult appends the outcome of pattern.
func (m *Manifest) AddResult(pattern string, matches []string, err error) {
	r := PatternResult{Pattern: pattern, Matches: matches}
	if r.Matches == nil {
		r.Matches = []string{}
	}
	if err != nil {
		r.Error = err.Error()
	}
	m.Results = append(m.Results, r)
}

// AddIssues appends recoverable problems.
func (m *Manifest) AddIssues(issues []match.Issue) {
	for _, issue := range issues {
		m.Issues = append(m.Issues, Issue{
			Path:     issue.Path,
			Severity: issue.Severity.String(),
			Error:    issue.Err.Error(),
		})
	}
}

// Total returns the number of matched paths across all patterns.
func (m *Manifest) Total() int {
	n := 0
	for _, r := range m.Results {
		n += len(r.Matches)
	}
	return n
}

// Write stores the manifest at path. Concurrent writers are serialised
// through path.lock and readers never observe a partial file.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return LockAndWrite(path, data)
}

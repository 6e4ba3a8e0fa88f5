package match

import (
	"errors"
	"fmt"
	"sync"
)

// Fatal errors. These abort FindMatches and no result is returned.
var (
	// ErrNoFilesRequested means neither deleted nor undeleted entries were
	// requested after option derivation.
	ErrNoFilesRequested = errors.New("no files requested")
	// ErrUnknownOptions means the option set contains unrecognised bits.
	ErrUnknownOptions = errors.New("unknown match options")
	// ErrSearchStart means the directory a pattern is resolved from could
	// not be read.
	ErrSearchStart = errors.New("cannot read search start directory")
)

// Recoverable conditions. These are passed to the Reporter and traversal
// continues with the next candidate.
var (
	// ErrIsMountpoint is reported as a warning when recursion stops at a
	// mountpoint because FollowMountpoints is not set.
	ErrIsMountpoint = errors.New("is a mountpoint, not traversed")
	// ErrSymlinkLoop is reported as a warning when a followed link leads
	// back to a directory already being traversed.
	ErrSymlinkLoop = errors.New("symbolic link loop, not traversed")
)

// Reporter receives recoverable problems found during traversal.
type Reporter interface {
	Warn(path string, err error)
	Error(path string, err error)
}

type nopReporter struct{}

func (nopReporter) Warn(string, error)  {}
func (nopReporter) Error(string, error) {}

// Severity distinguishes warnings from errors in Diagnostics.
type Severity int

const (
	// SeverityWarning marks policy stops such as mountpoints.
	SeverityWarning Severity = iota
	// SeverityError marks failed filesystem operations.
	SeverityError
)

// String returns the string representation of Severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Issue is one recoverable problem.
type Issue struct {
	Path     string
	Err      error
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %v", i.Path, i.Err)
}

// Diagnostics records every reported issue and optionally forwards it to
// another Reporter. It is safe for concurrent use.
type Diagnostics struct {
	mu     sync.Mutex
	issues []Issue
	next   Reporter
}

// NewDiagnostics creates a recorder that forwards to next when non-nil.
func NewDiagnostics(next Reporter) *Diagnostics {
	return &Diagnostics{next: next}
}

// Warn records a warning.
func (d *Diagnostics) Warn(path string, err error) {
	d.record(Issue{Path: path, Err: err, Severity: SeverityWarning})
	if d.next != nil {
		d.next.Warn(path, err)
	}
}

// Error records an error.
func (d *Diagnostics) Error(path string, err error) {
	d.record(Issue{Path: path, Err: err, Severity: SeverityError})
	if d.next != nil {
		d.next.Error(path, err)
	}
}

func (d *Diagnostics) record(issue Issue) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.issues = append(d.issues, issue)
}

// Issues returns every recorded issue in report order.
func (d *Diagnostics) Issues() []Issue {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Issue, len(d.issues))
	copy(out, d.issues)
	return out
}

// Warnings returns recorded warnings.
func (d *Diagnostics) Warnings() []Issue {
	return d.filter(SeverityWarning)
}

// Errors returns recorded errors.
func (d *Diagnostics) Errors() []Issue {
	return d.filter(SeverityError)
}

// Reset discards recorded issues.
func (d *Diagnostics) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.issues = nil
}

func (d *Diagnostics) filter(sev Severity) []Issue {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Issue
	for _, issue := range d.issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

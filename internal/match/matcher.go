package match

import (
	"fmt"

	"github.com/harrison/salvage/internal/deleted"
	"github.com/harrison/salvage/internal/fsys"
	"github.com/harrison/salvage/internal/glob"
	"github.com/harrison/salvage/internal/strlist"
)

// Matcher resolves patterns against a filesystem.
type Matcher struct {
	fs       fsys.FileSystem
	codec    *deleted.Codec
	globs    *glob.Matcher
	reporter Reporter
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithCodec sets the deleted-name codec. The default uses deleted.DefaultMarker.
func WithCodec(c *deleted.Codec) Option {
	return func(m *Matcher) {
		if c != nil {
			m.codec = c
		}
	}
}

// WithReporter sets where recoverable problems go. By default they are
// discarded.
func WithReporter(r Reporter) Option {
	return func(m *Matcher) {
		if r != nil {
			m.reporter = r
		}
	}
}

// New creates a Matcher over fs.
func New(fs fsys.FileSystem, opts ...Option) *Matcher {
	m := &Matcher{
		fs:       fs,
		codec:    deleted.Default(),
		globs:    glob.NewMatcher(),
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindMatches returns every path matching pattern under opts.
//
// A leading separator makes the search absolute; otherwise it starts in the
// current directory and results are relative. Results follow directory
// enumeration order, depth first. With a recursion option set, each match
// contributes its subtree followed by itself, the latter only when its own
// shape is requested (FindDeleted for deleted names, FindUndeleted
// otherwise).
//
// The returned slice is never nil on success. On error it is nil and all
// intermediate results have been released.
func (m *Matcher) FindMatches(pattern string, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	flags, err := opts.topLevelFlags()
	if err != nil {
		return nil, err
	}
	if err := m.globs.Validate(pattern); err != nil {
		return nil, fmt.Errorf("%s: %w", pattern, err)
	}

	matched, err := m.matchPattern(pattern, flags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pattern, err)
	}
	defer matched.Release()

	if matched.Len() == 0 || !opts.Recursive() {
		return matched.Strings(), nil
	}

	result := strlist.New(matched.Len())
	defer result.Release()

	for i := 0; i < matched.Len(); i++ {
		path := matched.At(i)
		result.AddAll(m.expandSubtree(path, opts))

		if m.codec.IsDeleted(path) {
			if opts.Has(FindDeleted) {
				result.Add(path)
			}
		} else if opts.Has(FindUndeleted) {
			result.Add(path)
		}
	}

	return result.Strings(), nil
}

// closeDir releases a directory handle, reporting a failed close.
func (m *Matcher) closeDir(d fsys.Dir, path string) {
	if err := d.Close(); err != nil {
		m.reporter.Error(displayPath(path), err)
	}
}

// displayPath renders the empty prefix of a relative search as ".".
func displayPath(path string) string {
	if path == "" {
		return "."
	}
	return path
}

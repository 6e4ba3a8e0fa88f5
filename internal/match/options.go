package match

import (
	"fmt"
	"strings"
)

// Options selects what FindMatches returns and how subtrees are traversed.
type Options uint16

const (
	// FindUndeleted returns undeleted entries.
	FindUndeleted Options = 1 << iota
	// FindDeleted returns deleted entries.
	FindDeleted
	// FindContents returns the immediate contents of matched directories.
	FindContents
	// RecursFindDeleted searches undeleted subdirectories of matches for
	// deleted entries.
	RecursFindDeleted
	// RecursFindUndeleted searches undeleted subdirectories of matches for
	// undeleted entries.
	RecursFindUndeleted
	// RecursDeleted returns the contents of deleted directories as well as
	// the directories themselves.
	RecursDeleted
	// FollowLinks follows undeleted symbolic links to directories while
	// recursing. Deleted links are never followed.
	FollowLinks
	// FollowMountpoints crosses into other filesystems while recursing.
	FollowMountpoints
	// FindDotfiles includes undeleted entries whose names begin with '.'.
	FindDotfiles

	optionsEnd
)

// AllOptions is the set of recognised option bits.
const AllOptions = optionsEnd - 1

// recursMask is the set of options that request subtree expansion.
const recursMask = FindContents | RecursFindDeleted | RecursFindUndeleted | RecursDeleted

var optionNames = []struct {
	opt  Options
	name string
}{
	{FindUndeleted, "FindUndeleted"},
	{FindDeleted, "FindDeleted"},
	{FindContents, "FindContents"},
	{RecursFindDeleted, "RecursFindDeleted"},
	{RecursFindUndeleted, "RecursFindUndeleted"},
	{RecursDeleted, "RecursDeleted"},
	{FollowLinks, "FollowLinks"},
	{FollowMountpoints, "FollowMountpoints"},
	{FindDotfiles, "FindDotfiles"},
}

// Has reports whether every bit of o is set.
func (opts Options) Has(o Options) bool {
	return opts&o == o
}

// HasAny reports whether at least one bit of o is set.
func (opts Options) HasAny(o Options) bool {
	return opts&o != 0
}

// Validate rejects bits outside AllOptions.
func (opts Options) Validate() error {
	if unknown := opts &^ AllOptions; unknown != 0 {
		return fmt.Errorf("%w: %#x", ErrUnknownOptions, uint16(unknown))
	}
	return nil
}

// Recursive reports whether the options request subtree expansion.
func (opts Options) Recursive() bool {
	return opts.HasAny(recursMask)
}

// String renders the set bits as "A|B|C".
func (opts Options) String() string {
	if opts == 0 {
		return "none"
	}
	var names []string
	for _, n := range optionNames {
		if opts.Has(n.opt) {
			names = append(names, n.name)
		}
	}
	if unknown := opts &^ AllOptions; unknown != 0 {
		names = append(names, fmt.Sprintf("%#x", uint16(unknown)))
	}
	return strings.Join(names, "|")
}

// matchFlags are the derived flags for the top-level pattern match.
type matchFlags struct {
	undeleted bool
	deleted   bool
	dotfiles  bool
}

// topLevelFlags derives the pattern-match flags. Expanding a directory's
// contents requires locating it as an undeleted entry first, so every
// recursion request forces undeleted matching.
func (opts Options) topLevelFlags() (matchFlags, error) {
	f := matchFlags{
		undeleted: opts.Has(FindUndeleted) || opts.HasAny(RecursFindDeleted|RecursFindUndeleted|FindContents),
		deleted:   opts.Has(FindDeleted),
		dotfiles:  opts.Has(FindDotfiles),
	}
	if !f.undeleted && !f.deleted {
		return f, ErrNoFilesRequested
	}
	return f, nil
}

// subtreeOptions applies the implications used while enumerating a
// subtree: searching for or descending into deleted entries means deleted
// entries are wanted, and searching for undeleted ones means those are.
func (opts Options) subtreeOptions() Options {
	if opts.HasAny(RecursFindDeleted | RecursDeleted) {
		opts |= FindDeleted
	}
	if opts.Has(RecursFindUndeleted) {
		opts |= FindUndeleted
	}
	return opts
}

package match

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/harrison/salvage/internal/fsys"
	"github.com/harrison/salvage/internal/glob"
	"github.com/harrison/salvage/internal/strlist"
)

// matchPattern returns the top-level matches of pattern. Each recursion
// level owns its directory handle and path prefix; a handle is closed
// before its level returns, so handles are released innermost first.
func (m *Matcher) matchPattern(pattern string, f matchFlags) (*strlist.List, error) {
	found := strlist.New(0)

	prefix := ""
	if glob.IsAbs(pattern) {
		prefix = glob.Separator
	}

	first, rest := glob.SplitFirst(pattern)
	if first == "" {
		// The pattern names the starting location itself.
		if f.undeleted {
			found.Add(displayPath(prefix))
		}
		return found, nil
	}

	if err := m.matchLevel(prefix, first, rest, f, found, true); err != nil {
		found.Release()
		return nil, err
	}
	return found, nil
}

// matchLevel resolves one pattern component against the entries of dir and
// descends into every entry it matches. top marks the search start, whose
// failure to open is fatal; deeper failures abandon only the branch.
func (m *Matcher) matchLevel(dir, first, rest string, f matchFlags, found *strlist.List, top bool) error {
	if !glob.HasWildcards(first) {
		return m.matchLiteral(dir, glob.Unescape(first), rest, f, found)
	}

	d, err := m.fs.OpenDir(dir)
	if err != nil {
		switch {
		case top:
			return fmt.Errorf("%w: %w", ErrSearchStart, err)
		case !fsys.IsNotDir(err):
			m.reporter.Error(displayPath(dir), err)
		}
		return nil
	}
	defer m.closeDir(d, dir)

	for {
		name, err := d.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			m.reporter.Error(displayPath(dir), err)
			return nil
		}

		ok, err := m.componentMatches(first, name, f)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := m.descend(glob.Join(dir, name), rest, f, found); err != nil {
			return err
		}
	}
}

// componentMatches compares a component against an entry name. A name
// that fails to match as stored may still match through its undeleted
// form when deleted entries are wanted; it is then used as the deleted
// entry, not reclassified.
func (m *Matcher) componentMatches(first, name string, f matchFlags) (bool, error) {
	if m.matchesStored(first, name, f) {
		res, err := m.globs.Compare(first, name)
		if err != nil {
			return false, err
		}
		if res == glob.Match {
			return true, nil
		}
	}

	if !f.deleted || !m.codec.IsDeleted(name) {
		return false, nil
	}
	res, err := m.globs.Compare(first, m.codec.UndeletedForm(name))
	if err != nil {
		return false, err
	}
	return res == glob.Match, nil
}

// matchesStored applies the shell convention that a wildcard does not
// match a leading '.' unless the component starts with one.
func (m *Matcher) matchesStored(first, name string, f matchFlags) bool {
	if f.dotfiles || !strings.HasPrefix(name, ".") {
		return true
	}
	return strings.HasPrefix(first, ".")
}

// matchLiteral resolves a wildcard-free component with direct metadata
// queries instead of reading dir. The candidates are exactly the names the
// wildcard path would accept: the component itself and, when deleted
// entries are wanted, its deleted form.
func (m *Matcher) matchLiteral(dir, name, rest string, f matchFlags, found *strlist.List) error {
	candidates := []string{name}
	if f.deleted {
		candidates = append(candidates, m.codec.DeletedForm(name))
	}

	for _, candidate := range candidates {
		path := glob.Join(dir, candidate)
		if _, err := m.fs.Stat(path, false); err != nil {
			if !errors.Is(err, fs.ErrNotExist) && !fsys.IsNotDir(err) {
				m.reporter.Error(path, err)
			}
			continue
		}
		if err := m.descend(path, rest, f, found); err != nil {
			return err
		}
	}
	return nil
}

// descend continues the search below path. When the pattern is exhausted
// path is a leaf and is classified by its own last component.
func (m *Matcher) descend(path, rest string, f matchFlags, found *strlist.List) error {
	next, rest := glob.SplitFirst(rest)
	if next == "" {
		if m.codec.IsDeleted(glob.LastComponent(path)) {
			if f.deleted {
				found.Add(path)
			}
		} else if f.undeleted {
			found.Add(path)
		}
		return nil
	}
	return m.matchLevel(path, next, rest, f, found, false)
}

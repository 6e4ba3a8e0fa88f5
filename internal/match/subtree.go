package match

import (
	"errors"
	"io"

	"github.com/harrison/salvage/internal/fsys"
	"github.com/harrison/salvage/internal/glob"
	"github.com/harrison/salvage/internal/strlist"
)

// subtreeWalk carries the state shared by one subtree expansion.
type subtreeWalk struct {
	m     *Matcher
	opts  Options
	found *strlist.List
	// active holds the identities of directories on the current descent
	// path; only populated while following links.
	active map[fsys.FileID]bool
}

// expandSubtree lists everything below start according to opts. The start
// itself is never part of the result.
func (m *Matcher) expandSubtree(start string, opts Options) *strlist.List {
	found := strlist.New(0)

	// Deleted links are never followed, whatever the options say.
	if m.codec.IsDeleted(glob.LastComponent(start)) {
		if info, err := m.fs.Stat(start, false); err == nil && info.IsSymlink {
			return found
		}
	}

	d, err := m.fs.OpenDir(start)
	if err != nil {
		if !fsys.IsNotDir(err) {
			m.reporter.Error(start, err)
		}
		return found
	}

	w := &subtreeWalk{
		m:     m,
		opts:  opts.subtreeOptions(),
		found: found,
	}
	if w.opts.Has(FollowLinks) {
		w.active = make(map[fsys.FileID]bool)
		if info, err := m.fs.Stat(start, true); err == nil && info.ID.Valid() {
			w.active[info.ID] = true
		}
	}

	// Entries below the current directory are named the way a relative
	// wildcard names them, without a leading "./".
	dir := start
	if dir == "." {
		dir = ""
	}
	w.scan(d, dir)
	return found
}

// scan enumerates one open directory and closes it before returning.
func (w *subtreeWalk) scan(d fsys.Dir, dir string) {
	defer w.m.closeDir(d, dir)

	for {
		name, err := d.Next()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			w.m.reporter.Error(displayPath(dir), err)
			return
		}

		path := glob.Join(dir, name)
		switch {
		case w.m.codec.IsDeleted(name):
			if !w.opts.Has(FindDeleted) {
				continue
			}
			w.found.Add(path)
			if w.opts.Has(RecursDeleted) {
				w.descend(path, false)
			}

		case w.m.codec.IsDotfile(name):
			// Dotfiles are leaves for recursion.
			if w.opts.Has(FindUndeleted | FindDotfiles) {
				w.found.Add(path)
			}

		default:
			if w.opts.Has(FindUndeleted) {
				w.found.Add(path)
			}
			if w.opts.HasAny(RecursFindDeleted | RecursFindUndeleted) {
				w.descend(path, w.opts.Has(FollowLinks))
			}
		}
	}
}

// descend classifies path before opening it, so plain files never cost an
// open. Mountpoints are only checked when they would stop the descent. Any
// failure abandons only this branch.
func (w *subtreeWalk) descend(path string, followLinks bool) {
	info, err := w.m.fs.Stat(path, followLinks)
	if err != nil {
		w.m.reporter.Error(path, err)
		return
	}
	if !info.IsDir {
		return
	}
	if !w.opts.Has(FollowMountpoints) {
		mounted, err := w.m.fs.IsMountpoint(path, followLinks)
		if err != nil {
			w.m.reporter.Error(path, err)
			return
		}
		if mounted {
			w.m.reporter.Warn(path, ErrIsMountpoint)
			return
		}
	}
	if w.active != nil && info.ID.Valid() {
		if w.active[info.ID] {
			w.m.reporter.Warn(path, ErrSymlinkLoop)
			return
		}
		w.active[info.ID] = true
		defer delete(w.active, info.ID)
	}

	d, err := w.m.fs.OpenDir(path)
	if err != nil {
		if !fsys.IsNotDir(err) {
			w.m.reporter.Error(path, err)
		}
		return
	}
	w.scan(d, path)
}

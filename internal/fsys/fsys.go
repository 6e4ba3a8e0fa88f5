// Package fsys is the filesystem boundary of the matcher: directory
// enumeration and metadata queries over an afero filesystem.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/spf13/afero"
)

// readBatchSize bounds how many names are read from a directory at once.
const readBatchSize = 256

// ErrNotADirectory is returned by OpenDir when the target exists but is not
// a directory.
var ErrNotADirectory = errors.New("not a directory")

// FileID identifies a file independently of the path used to reach it.
// The zero value means the backend cannot provide identities.
type FileID struct {
	Dev uint64
	Ino uint64
}

// Valid reports whether the identity was populated.
func (id FileID) Valid() bool {
	return id != FileID{}
}

// Info is the metadata the traversal needs about one path.
type Info struct {
	IsDir     bool
	IsSymlink bool
	ID        FileID
}

// Dir is an open directory handle.
type Dir interface {
	// Next returns the next entry name, or io.EOF when entries are exhausted.
	Next() (string, error)
	Close() error
}

// FileSystem is the set of filesystem operations the traversal performs.
type FileSystem interface {
	OpenDir(path string) (Dir, error)
	Stat(path string, followLinks bool) (Info, error)
	// IsMountpoint reports whether the directory at path is the root of a
	// separately mounted filesystem.
	IsMountpoint(path string, followLinks bool) (bool, error)
}

// MountDetector reports whether the directory at path is the root of a
// separately mounted filesystem.
type MountDetector func(path string, followLinks bool) (bool, error)

// PathError records which operation failed on which path.
type PathError struct {
	Op    string
	Path  string
	Cause error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Cause
}

// AferoFS implements FileSystem on top of an afero.Fs.
type AferoFS struct {
	fs           afero.Fs
	isMountpoint MountDetector
}

// Option configures an AferoFS.
type Option func(*AferoFS)

// WithMountDetector overrides mountpoint detection.
func WithMountDetector(d MountDetector) Option {
	return func(a *AferoFS) {
		a.isMountpoint = d
	}
}

// New wraps fs. Without a mount detector no directory is a mountpoint.
func New(fs afero.Fs, opts ...Option) *AferoFS {
	a := &AferoFS{
		fs:           fs,
		isMountpoint: neverMountpoint,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewOS returns a FileSystem over the real operating system filesystem with
// device-based mountpoint detection.
func NewOS() *AferoFS {
	return New(afero.NewOsFs(), WithMountDetector(DeviceMountDetector))
}

func neverMountpoint(string, bool) (bool, error) {
	return false, nil
}

// OpenDir opens path for enumeration. An empty path denotes the current
// directory.
func (a *AferoFS) OpenDir(path string) (Dir, error) {
	name := osPath(path)

	f, err := a.fs.Open(name)
	if err != nil {
		if isNotDir(err) {
			return nil, &PathError{Op: "open", Path: name, Cause: ErrNotADirectory}
		}
		return nil, &PathError{Op: "open", Path: name, Cause: err}
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &PathError{Op: "stat", Path: name, Cause: err}
	}
	if !info.IsDir() {
		_ = f.Close()
		return nil, &PathError{Op: "open", Path: name, Cause: ErrNotADirectory}
	}

	return &dirHandle{file: f, path: name}, nil
}

// Stat queries metadata for path. With followLinks false a symbolic link is
// described itself rather than its target. It needs nothing beyond what an
// existence check needs.
func (a *AferoFS) Stat(path string, followLinks bool) (Info, error) {
	name := osPath(path)

	var (
		fi  os.FileInfo
		err error
	)
	if lstater, ok := a.fs.(afero.Lstater); ok && !followLinks {
		fi, _, err = lstater.LstatIfPossible(name)
	} else {
		fi, err = a.fs.Stat(name)
	}
	if err != nil {
		return Info{}, &PathError{Op: "stat", Path: name, Cause: err}
	}

	return Info{
		IsDir:     fi.IsDir(),
		IsSymlink: fi.Mode()&fs.ModeSymlink != 0,
		ID:        fileID(fi),
	}, nil
}

// IsMountpoint asks the mount detector about path.
func (a *AferoFS) IsMountpoint(path string, followLinks bool) (bool, error) {
	name := osPath(path)
	mounted, err := a.isMountpoint(name, followLinks)
	if err != nil {
		return false, &PathError{Op: "mountpoint", Path: name, Cause: err}
	}
	return mounted, nil
}

// IsNotDir reports whether err means the target is not a directory.
func IsNotDir(err error) bool {
	return errors.Is(err, ErrNotADirectory) || isNotDir(err)
}

func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}

func osPath(path string) string {
	if path == "" {
		return "."
	}
	return path
}

type dirHandle struct {
	file    afero.File
	path    string
	pending []string
	done    bool
	closed  bool
}

func (d *dirHandle) Next() (string, error) {
	for len(d.pending) == 0 {
		if d.done {
			return "", io.EOF
		}
		names, err := d.file.Readdirnames(readBatchSize)
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.done = true
				continue
			}
			return "", &PathError{Op: "readdir", Path: d.path, Cause: err}
		}
		if len(names) == 0 {
			d.done = true
		}
		d.pending = names
	}

	name := d.pending[0]
	d.pending = d.pending[1:]
	return name, nil
}

func (d *dirHandle) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if err := d.file.Close(); err != nil {
		return &PathError{Op: "close", Path: d.path, Cause: err}
	}
	return nil
}

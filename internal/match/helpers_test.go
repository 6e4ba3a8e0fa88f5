package match

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/harrison/salvage/internal/fsys"
)

// memTree builds an in-memory tree. Entries ending in "/" are directories,
// everything else is a regular file.
func memTree(t *testing.T, entries ...string) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	for _, e := range entries {
		if strings.HasSuffix(e, "/") {
			require.NoError(t, mem.MkdirAll(e, 0o755))
			continue
		}
		require.NoError(t, mem.MkdirAll(filepath.Dir(e), 0o755))
		require.NoError(t, afero.WriteFile(mem, e, []byte("data"), 0o644))
	}
	return mem
}

// trackingFS wraps a FileSystem to count calls and open handles and to
// inject open failures.
type trackingFS struct {
	fsys.FileSystem
	openErr map[string]error
	statErr map[string]error

	calls   int
	opens   int
	closes  int
	open    int
	maxOpen int
}

func newTrackingFS(inner fsys.FileSystem) *trackingFS {
	return &trackingFS{
		FileSystem: inner,
		openErr:    make(map[string]error),
		statErr:    make(map[string]error),
	}
}

func (f *trackingFS) OpenDir(path string) (fsys.Dir, error) {
	f.calls++
	if err, ok := f.openErr[path]; ok {
		return nil, &fsys.PathError{Op: "open", Path: path, Cause: err}
	}
	d, err := f.FileSystem.OpenDir(path)
	if err != nil {
		return nil, err
	}
	f.opens++
	f.open++
	if f.open > f.maxOpen {
		f.maxOpen = f.open
	}
	return &trackedDir{Dir: d, fs: f}, nil
}

func (f *trackingFS) Stat(path string, followLinks bool) (fsys.Info, error) {
	f.calls++
	if err, ok := f.statErr[path]; ok {
		return fsys.Info{}, &fsys.PathError{Op: "stat", Path: path, Cause: err}
	}
	return f.FileSystem.Stat(path, followLinks)
}

type trackedDir struct {
	fsys.Dir
	fs     *trackingFS
	closed bool
}

func (d *trackedDir) Close() error {
	if !d.closed {
		d.closed = true
		d.fs.closes++
		d.fs.open--
	}
	return d.Dir.Close()
}

func newTestMatcher(fs fsys.FileSystem) (*Matcher, *Diagnostics) {
	diag := NewDiagnostics(nil)
	return New(fs, WithReporter(diag)), diag
}

// chdir changes the working directory to dir and restores the previous
// one when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
